package engine

import (
	"context"
	"time"

	"bossai/experiments/metrics"
	"bossai/game"
	"bossai/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// TurnOptions pace a boss turn. After every executed move the turn waits a
// random settle delay in [MinSettle, MaxSettle] before searching again.
type TurnOptions struct {
	Tick      time.Duration
	MinSettle time.Duration
	MaxSettle time.Duration
	MaxMoves  int
	Rand      *rand.Rand
	// Evaluate scores the root of each decision for the records. Optional.
	Evaluate  game.Evaluate
}

func DefaultTurnOptions(seed uint64) TurnOptions {
	return TurnOptions{
		Tick:     time.Millisecond,
		MaxMoves: MaxMovesPerTurn,
		Rand:     rand.New(rand.NewSource(seed)),
	}
}

// BossTurn plays boss moves one at a time until the agent passes. Every
// search starts from a fresh snapshot of the table, so it sees all moves
// executed before it. A failed execution, a move that changes nothing or the
// move cap also end the turn. Only a cancelled ctx is reported as an error;
// the search in flight is abandoned, not stopped.
func BossTurn(ctx context.Context, table Table, a agent.Agent, turn int, opts TurnOptions) ([]metrics.MoveMetric, error) {
	var decisions []metrics.MoveMetric
	for played := 0; opts.MaxMoves <= 0 || played < opts.MaxMoves; played++ {
		state, byID, err := table.Snapshot()
		if err != nil {
			log.Warn().Err(err).Msg("Cannot snapshot the table, ending boss turn")
			return decisions, nil
		}

		move, metric, err := wait(ctx, agent.Submit(a, state), opts.Tick)
		if err != nil {
			return decisions, err
		}
		decisions = append(decisions, decision(turn, game.Boss, state, move, metric, opts.Evaluate))
		if move.IsPass() {
			break
		}

		if err := table.Play(game.Boss, byID, move); err != nil {
			log.Warn().Err(err).Msgf("Boss move %s failed, ending turn", move)
			break
		}
		if table.IsGameOver() {
			break
		}
		if err := opts.settle(ctx); err != nil {
			return decisions, err
		}

		after, _, err := table.Snapshot()
		if err == nil && after.Hash() == state.Hash() {
			log.Warn().Msgf("Boss move %s changed nothing, ending turn", move)
			break
		}
	}
	return decisions, nil
}

// wait polls job once per tick until it completes.
func wait(ctx context.Context, job *agent.Job, tick time.Duration) (game.Move, metrics.SearchMetric, error) {
	if tick <= 0 {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		if move, metric, ok := job.Result(); ok {
			return move, metric, nil
		}
		select {
		case <-ctx.Done():
			return game.PassMove, metrics.SearchMetric{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (o TurnOptions) settle(ctx context.Context) error {
	delay := o.MinSettle
	if span := o.MaxSettle - o.MinSettle; span > 0 && o.Rand != nil {
		delay += time.Duration(o.Rand.Int63n(int64(span) + 1))
	}
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func decision(turn int, team game.Team, state *game.GameState, move game.Move, metric metrics.SearchMetric, evaluate game.Evaluate) metrics.MoveMetric {
	m := metrics.MoveMetric{
		Turn:         turn,
		Team:         team.String(),
		Move:         move.String(),
		StateHash:    uint64(state.Hash()),
		SearchMetric: metric,
	}
	if evaluate != nil {
		m.Score = evaluate(state, 0)
	}
	return m
}
