package engine

import (
	"context"
	"time"

	"bossai/experiments/metrics"
	"bossai/game"
	"bossai/player"
	"bossai/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Match alternates boss and player turns on a table. Each turn starts with
// the acting team's phase.
type Match struct {
	Table    Table
	Boss     agent.Agent
	Player   player.Controller
	Turn     TurnOptions
	MaxTurns int
}

var _ Engine = (*Match)(nil)

func NewMatch(table Table, boss agent.Agent, controller player.Controller, opts TurnOptions) *Match {
	return &Match{
		Table:    table,
		Boss:     boss,
		Player:   controller,
		Turn:     opts,
		MaxTurns: MaxTurns,
	}
}

// Run executes the entire game loop until a winner is found.
func (m *Match) Run(ctx context.Context) (metrics.MatchMetric, []metrics.MoveMetric, error) {
	start := time.Now()
	var moves []metrics.MoveMetric

	turn := 0
	for !m.Table.IsGameOver() && (m.MaxTurns <= 0 || turn < m.MaxTurns) {
		turn++

		if err := m.Table.BeginPhase(game.Boss); err != nil {
			return m.result(start, turn, moves), moves, err
		}
		decisions, err := BossTurn(ctx, m.Table, m.Boss, turn, m.Turn)
		moves = append(moves, decisions...)
		if err != nil {
			return m.result(start, turn, moves), moves, err
		}
		if m.Table.IsGameOver() {
			break
		}

		if err := m.Table.BeginPhase(game.Player); err != nil {
			return m.result(start, turn, moves), moves, err
		}
		moves = append(moves, m.playerTurn(turn)...)
	}

	result := m.result(start, turn, moves)
	if result.Winner != "" {
		log.Info().Msgf("Game ended due to a winner: %s after %d turns", result.Winner, turn)
	} else {
		log.Info().Msgf("Stopped after %d turns (no winner yet)", turn)
	}
	return result, moves, nil
}

func (m *Match) playerTurn(turn int) []metrics.MoveMetric {
	var decisions []metrics.MoveMetric
	for played := 0; m.Turn.MaxMoves <= 0 || played < m.Turn.MaxMoves; played++ {
		state, byID, err := m.Table.Snapshot()
		if err != nil {
			log.Warn().Err(err).Msg("Cannot snapshot the table, ending player turn")
			break
		}
		move := m.Player.NextMove(state)
		decisions = append(decisions, decision(turn, game.Player, state, move, metrics.SearchMetric{}, m.Turn.Evaluate))
		if move.IsPass() {
			break
		}
		if err := m.Table.Play(game.Player, byID, move); err != nil {
			log.Warn().Err(err).Msgf("Player move %s failed, ending turn", move)
			break
		}
		if m.Table.IsGameOver() {
			break
		}
	}
	return decisions
}

func (m *Match) result(start time.Time, turns int, moves []metrics.MoveMetric) metrics.MatchMetric {
	end := time.Now()
	played := 0
	for _, mv := range moves {
		if mv.Move != game.PassMove.String() {
			played++
		}
	}
	return metrics.MatchMetric{
		Winner:        m.winner(),
		StartTime:     start,
		EndTime:       end,
		Duration:      end.Sub(start),
		Turns:         turns,
		TotalMoves:    played,
		FinalPlayerHP: m.Table.PlayerHP(),
	}
}

// winner is empty while both sides can still win.
func (m *Match) winner() string {
	switch {
	case m.Table.PlayerHP() <= 0 || m.Table.CountUnits(game.Player) == 0:
		return game.Boss.String()
	case m.Table.CountUnits(game.Boss) == 0:
		return game.Player.String()
	}
	return ""
}
