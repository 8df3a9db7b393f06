package engine

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"bossai/experiments/metrics"
	"bossai/game"
	"bossai/gamemaster"
	"bossai/player"
	"bossai/searcher"
	"bossai/searcher/agent"

	"github.com/stretchr/testify/require"
)

// strikeTable has a boss rook one step away from the player's home row and
// enough damage to finish the player.
func strikeTable(t *testing.T) *gamemaster.LocalEngine {
	t.Helper()
	s := gamemaster.NewScene(4, 4, 3)
	_, err := s.Spawn("striker", game.Boss, game.Rook, game.Position{Row: 1, Col: 0}, gamemaster.Stats{Health: 3, Damage: 3, Lifetime: game.InfiniteLifetime, Worth: 1, Moves: 1})
	require.NoError(t, err)
	_, err = s.Spawn("guard", game.Player, game.Pawn, game.Position{Row: 0, Col: 3}, gamemaster.DefaultStats(game.Pawn))
	require.NoError(t, err)
	require.NoError(t, s.BeginPhase(game.Boss))
	return gamemaster.NewLocalEngine(s, game.NewStandardRules())
}

func bossAgent() agent.Agent {
	return agent.NewBossAgent(searcher.NewMinimax(searcher.WithMetrics()), 2)
}

type fixedAgent struct {
	move game.Move
}

func (a fixedAgent) FindMove(*game.GameState) (game.Move, metrics.SearchMetric) {
	return a.move, metrics.SearchMetric{}
}

type blockingAgent struct {
	release chan struct{}
}

func (a blockingAgent) FindMove(*game.GameState) (game.Move, metrics.SearchMetric) {
	<-a.release
	return game.PassMove, metrics.SearchMetric{}
}

func TestBossTurn(t *testing.T) {
	t.Run("plays until the game ends", func(t *testing.T) {
		table := strikeTable(t)

		decisions, err := BossTurn(context.Background(), table, bossAgent(), 1, DefaultTurnOptions(1))

		require.NoError(t, err)
		require.Len(t, decisions, 1)
		require.Equal(t, "boss", decisions[0].Team)
		require.Positive(t, decisions[0].Nodes)
		require.Equal(t, 0, table.PlayerHP())
		require.True(t, table.IsGameOver())
	})

	t.Run("stops on pass", func(t *testing.T) {
		table := strikeTable(t)

		decisions, err := BossTurn(context.Background(), table, fixedAgent{move: game.PassMove}, 1, DefaultTurnOptions(1))

		require.NoError(t, err)
		require.Len(t, decisions, 1)
		require.Equal(t, "pass", decisions[0].Move)
		require.Empty(t, table.History())
	})

	t.Run("stops on a failed move", func(t *testing.T) {
		table := strikeTable(t)
		illegal := fixedAgent{move: game.Move{UnitID: 0, To: game.Position{Row: 2, Col: 1}}}

		decisions, err := BossTurn(context.Background(), table, illegal, 1, DefaultTurnOptions(1))

		require.NoError(t, err)
		require.Len(t, decisions, 1)
		require.Equal(t, 3, table.PlayerHP())
	})

	t.Run("respects the move cap", func(t *testing.T) {
		table := strikeTable(t)
		opts := DefaultTurnOptions(1)
		opts.MaxMoves = 1
		sideways := fixedAgent{move: game.Move{UnitID: 0, To: game.Position{Row: 1, Col: 1}}}

		decisions, err := BossTurn(context.Background(), table, sideways, 1, opts)

		require.NoError(t, err)
		require.Len(t, decisions, 1)
		require.Len(t, table.History(), 1)
	})

	t.Run("scores decisions when asked", func(t *testing.T) {
		opts := DefaultTurnOptions(1)
		opts.Evaluate = func(*game.GameState, int) float64 { return 7 }

		decisions, err := BossTurn(context.Background(), strikeTable(t), fixedAgent{move: game.PassMove}, 1, opts)

		require.NoError(t, err)
		require.Equal(t, 7.0, decisions[0].Score)
	})

	t.Run("cancellation abandons the search", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		decisions, err := BossTurn(ctx, strikeTable(t), blockingAgent{release: release}, 1, DefaultTurnOptions(1))

		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Empty(t, decisions)
	})
}

func TestSettle(t *testing.T) {
	t.Run("delay stays in range", func(t *testing.T) {
		opts := DefaultTurnOptions(7)
		opts.MinSettle = time.Millisecond
		opts.MaxSettle = 3 * time.Millisecond

		start := time.Now()
		require.NoError(t, opts.settle(context.Background()))
		require.GreaterOrEqual(t, time.Since(start), time.Millisecond)
	})

	t.Run("cancelled while settling", func(t *testing.T) {
		opts := DefaultTurnOptions(7)
		opts.MinSettle = time.Hour
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.ErrorIs(t, opts.settle(ctx), context.Canceled)
	})
}

func TestMatch(t *testing.T) {
	t.Run("boss wins the strike", func(t *testing.T) {
		match := NewMatch(strikeTable(t), bossAgent(), player.NewSoftmaxController(game.NewStandardRules(), 1, 1), DefaultTurnOptions(1))

		result, moves, err := match.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, "boss", result.Winner)
		require.Equal(t, 1, result.Turns)
		require.Equal(t, 1, result.TotalMoves)
		require.Equal(t, 0, result.FinalPlayerHP)
		require.Len(t, moves, 1)
	})

	t.Run("standard opening stays within the turn cap", func(t *testing.T) {
		scene, err := gamemaster.StandardScene(8, 6, 20)
		require.NoError(t, err)
		table := gamemaster.NewLocalEngine(scene, game.NewStandardRules())
		match := NewMatch(table, agent.NewBossAgent(searcher.NewMinimax(), 1), player.NewSoftmaxController(game.NewStandardRules(), 1, 3), DefaultTurnOptions(3))
		match.MaxTurns = 3

		result, moves, err := match.Run(context.Background())

		require.NoError(t, err)
		require.LessOrEqual(t, result.Turns, 3)
		require.NotEmpty(t, moves)
		for _, m := range moves {
			require.Contains(t, []string{"boss", "player"}, m.Team)
		}
	})
}

func TestRemoteAgent(t *testing.T) {
	t.Run("matches the local agent", func(t *testing.T) {
		srv := httptest.NewServer(agent.NewHandler(bossAgent(), nil))
		defer srv.Close()
		state, _, err := strikeTable(t).Snapshot()
		require.NoError(t, err)

		remote, metric := NewRemoteAgent(srv.URL).FindMove(state)
		local, _ := bossAgent().FindMove(state)

		require.Equal(t, local.UnitID, remote.UnitID)
		require.Equal(t, local.To, remote.To)
		require.Equal(t, 2, metric.Depth)
	})

	t.Run("unreachable agent passes", func(t *testing.T) {
		srv := httptest.NewServer(agent.NewHandler(bossAgent(), nil))
		url := srv.URL
		srv.Close()
		state, _, err := strikeTable(t).Snapshot()
		require.NoError(t, err)

		move, _ := NewRemoteAgent(url).FindMove(state)

		require.True(t, move.IsPass())
	})

	t.Run("drives a boss turn", func(t *testing.T) {
		srv := httptest.NewServer(agent.NewHandler(bossAgent(), nil))
		defer srv.Close()
		table := strikeTable(t)

		_, err := BossTurn(context.Background(), table, NewRemoteAgent(srv.URL), 1, DefaultTurnOptions(1))

		require.NoError(t, err)
		require.Equal(t, 0, table.PlayerHP())
	})
}
