package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildAttackMap(t *testing.T) {
	forward := RuleBook{
		Rook: {{Kind: Slide, Forward: 1, Capture: true, Move: true}},
		Pawn: {
			{Kind: Jump, Forward: 1, Side: 1, Capture: true},
			{Kind: Jump, Forward: 1, Side: 0, Move: true},
		},
	}

	t.Run("slide counts up to and including the first enemy", func(t *testing.T) {
		gs := mustState(t, 5, 3, 10, bossUnit(1, 4, 1), playerUnit(2, 1, 1))

		am := BuildAttackMap(gs, forward)

		require.Equal(t, 1, am.Count(Boss, Position{Row: 3, Col: 1}))
		require.Equal(t, 1, am.Count(Boss, Position{Row: 2, Col: 1}))
		require.Equal(t, 1, am.Count(Boss, Position{Row: 1, Col: 1}), "Enemy cell should be threatened")
		require.Equal(t, 0, am.Count(Boss, Position{Row: 0, Col: 1}), "Nothing past the enemy")
	})

	t.Run("friendly blocker is not counted", func(t *testing.T) {
		blocker := bossUnit(2, 2, 1)
		blocker.Type = Knight
		gs := mustState(t, 5, 3, 10, bossUnit(1, 4, 1), blocker)

		am := BuildAttackMap(gs, forward)

		require.Equal(t, 1, am.Count(Boss, Position{Row: 3, Col: 1}))
		require.Equal(t, 0, am.Count(Boss, Position{Row: 2, Col: 1}))
		require.Equal(t, 0, am.Count(Boss, Position{Row: 1, Col: 1}))
	})

	t.Run("jumps count capture offsets only", func(t *testing.T) {
		gs := mustState(t, 5, 3, 10, playerUnit(1, 1, 0), playerUnit(2, 0, 1))

		am := BuildAttackMap(gs, forward)

		require.Equal(t, 1, am.Count(Player, Position{Row: 2, Col: 1}), "Diagonal capture cell")
		require.Equal(t, 0, am.Count(Player, Position{Row: 2, Col: 0}), "Move-only cell")
		require.Equal(t, 1, am.Count(Player, Position{Row: 1, Col: 2}))
		require.Equal(t, 0, am.Count(Boss, Position{Row: 2, Col: 1}), "Teams are counted separately")
	})

	t.Run("threats from several units add up", func(t *testing.T) {
		gs := mustState(t, 5, 3, 10, playerUnit(1, 1, 0), playerUnit(3, 1, 2), bossUnit(2, 4, 1))
		rules := RuleBook{
			Pawn: {
				{Kind: Jump, Forward: 1, Side: 1, Capture: true},
				{Kind: Jump, Forward: 1, Side: -1, Capture: true},
			},
		}

		am := BuildAttackMap(gs, rules)

		require.Equal(t, 2, am.Count(Player, Position{Row: 2, Col: 1}))
		require.Equal(t, 0, am.Count(Player, Position{Row: 9, Col: 9}), "Off-board cells are never threatened")
	})
}
