package player

import (
	"testing"

	"bossai/game"
	"bossai/searcher"

	"github.com/stretchr/testify/require"
)

func pawn(id int, team game.Team, row, col int) game.Unit {
	return game.Unit{
		ID:        id,
		Team:      team,
		Type:      game.Pawn,
		Pos:       game.Position{Row: row, Col: col},
		Health:    2,
		Damage:    1,
		Lifetime:  game.InfiniteLifetime,
		Worth:     1,
		BaseMoves: 1,
		MovesLeft: 1,
	}
}

// duel has a player pawn that can either advance or take a boss pawn.
func duel(t *testing.T) *game.GameState {
	t.Helper()
	gs, err := game.NewGameState(game.Board{Rows: 5, Cols: 5}, 10, []game.Unit{
		pawn(0, game.Player, 1, 1),
		pawn(1, game.Boss, 2, 2),
	}, nil)
	require.NoError(t, err)
	return gs
}

func TestAdjustTemperature(t *testing.T) {
	moves := []game.Move{{Heuristic: 3}, {Heuristic: 1}, {Heuristic: 1}}

	t.Run("probabilities sum to one", func(t *testing.T) {
		policy := adjustTemperature(moves, 1)

		sum := 0.0
		for _, p := range policy {
			sum += p
		}
		require.InDelta(t, 1, sum, 1e-9)
		require.Greater(t, policy[0], policy[1])
		require.Equal(t, policy[1], policy[2])
	})

	t.Run("hot policies flatten", func(t *testing.T) {
		cold := adjustTemperature(moves, 0.5)
		hot := adjustTemperature(moves, 100)

		require.Greater(t, cold[0], hot[0])
		require.InDelta(t, 1.0/3, hot[0], 0.01)
	})
}

func TestSoftmaxController(t *testing.T) {
	t.Run("zero temperature takes the capture", func(t *testing.T) {
		move := NewSoftmaxController(game.NewStandardRules(), 0, 1).NextMove(duel(t))

		require.True(t, move.Capture)
		require.Equal(t, game.Position{Row: 2, Col: 2}, move.To)
	})

	t.Run("same seed same moves", func(t *testing.T) {
		a := NewSoftmaxController(game.NewStandardRules(), 5, 42)
		b := NewSoftmaxController(game.NewStandardRules(), 5, 42)
		gs := duel(t)

		for i := 0; i < 10; i++ {
			require.Equal(t, a.NextMove(gs), b.NextMove(gs))
		}
	})

	t.Run("passes without moves", func(t *testing.T) {
		gs := game.BeginPhase(duel(t), game.Boss)

		move := NewSoftmaxController(game.NewStandardRules(), 1, 1).NextMove(gs)

		require.True(t, move.IsPass())
	})
}

func TestSearchController(t *testing.T) {
	move := NewSearchController(searcher.NewMinimax(), 2).NextMove(duel(t))

	require.False(t, move.IsPass())
	require.Equal(t, 0, move.UnitID)
}
