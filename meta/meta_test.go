package meta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bossai/game"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("partial files keep defaults", func(t *testing.T) {
		c, err := Parse([]byte(`
depth: 4
turn:
  min_settle: 10ms
  max_settle: 50ms
evaluator:
  player_hp: 80
`))

		require.NoError(t, err)
		require.Equal(t, 4, c.Depth)
		require.Equal(t, 10*time.Millisecond, c.Turn.MinSettle)
		require.Equal(t, 50*time.Millisecond, c.Turn.MaxSettle)
		require.Equal(t, 80.0, c.Evaluator.PlayerHP)
		require.Equal(t, game.DefaultWeights().WinScore, c.Evaluator.WinScore)
		require.Equal(t, Default().Board, c.Board)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Parse([]byte("depth: 0\n"))
		require.Error(t, err)

		_, err = Parse([]byte("turn:\n  min_settle: 1s\n  max_settle: 1ms\n"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("depth: ["))
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 9\n"), 0o644))

	c, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, uint64(9), c.Seed)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestConfigMinimax(t *testing.T) {
	gs, err := game.NewGameState(game.Board{Rows: 4, Cols: 4}, 3, []game.Unit{{
		ID: 1, Team: game.Boss, Type: game.Rook, Pos: game.Position{Row: 1, Col: 0},
		Health: 3, Damage: 3, Lifetime: game.InfiniteLifetime, BaseMoves: 1, MovesLeft: 1,
	}}, nil)
	require.NoError(t, err)

	move, ok := Default().Minimax().TryFindBestMove(gs, 1)

	require.True(t, ok)
	require.Equal(t, game.Position{Row: 0, Col: 0}, move.To)
}
