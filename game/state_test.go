package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func bossUnit(id, row, col int) Unit {
	return Unit{
		ID:        id,
		Team:      Boss,
		Type:      Rook,
		Pos:       Position{Row: row, Col: col},
		Health:    5,
		Damage:    3,
		Lifetime:  InfiniteLifetime,
		BaseMoves: 1,
		MovesLeft: 1,
	}
}

func playerUnit(id, row, col int) Unit {
	return Unit{
		ID:        id,
		Team:      Player,
		Type:      Pawn,
		Pos:       Position{Row: row, Col: col},
		Health:    2,
		Damage:    1,
		Lifetime:  InfiniteLifetime,
		BaseMoves: 1,
		MovesLeft: 1,
	}
}

func mustState(t *testing.T, rows, cols, hp int, units ...Unit) *GameState {
	t.Helper()
	gs, err := NewGameState(Board{Rows: rows, Cols: cols}, hp, units, nil)
	require.NoError(t, err)
	return gs
}

// verticalSlide lets rooks slide up to three cells straight ahead.
var verticalSlide = RuleBook{
	Rook: {{Kind: Slide, Forward: 1, MaxSteps: 3, Capture: true, Move: true}},
}

func TestNewGameState(t *testing.T) {
	t.Run("valid snapshot", func(t *testing.T) {
		gs := mustState(t, 4, 4, 10, bossUnit(1, 3, 1), playerUnit(2, 1, 1))

		got, ok := gs.UnitAt(Position{Row: 1, Col: 1})
		require.True(t, ok, "Lookup grid should index every unit")
		require.Equal(t, 2, got.ID)
		require.Equal(t, 1, gs.CountUnits(Boss))
		require.Equal(t, 1, gs.CountUnits(Player))
	})

	t.Run("unit out of bounds", func(t *testing.T) {
		_, err := NewGameState(Board{Rows: 4, Cols: 4}, 10, []Unit{bossUnit(1, 4, 0)}, nil)
		require.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("two units on one cell", func(t *testing.T) {
		_, err := NewGameState(Board{Rows: 4, Cols: 4}, 10, []Unit{bossUnit(1, 2, 2), playerUnit(2, 2, 2)}, nil)
		require.ErrorIs(t, err, ErrCellTaken)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		_, err := NewGameState(Board{Rows: 4, Cols: 4}, 10, []Unit{bossUnit(1, 2, 2), playerUnit(1, 0, 0)}, nil)
		require.Error(t, err)
	})

	t.Run("tile effects", func(t *testing.T) {
		wall := Position{Row: 2, Col: 0}
		gs, err := NewGameState(Board{Rows: 4, Cols: 4}, 10, nil, map[Position][]TileEffect{
			wall: {{Name: "wall", Duration: Permanent, BlocksTile: true}},
		})
		require.NoError(t, err)
		require.True(t, gs.IsBlocked(wall))
		require.False(t, gs.IsBlocked(Position{Row: 0, Col: 0}))
		require.False(t, gs.IsBlocked(Position{Row: -1, Col: 0}), "Off-board cells carry no tile effects")
	})
}

func TestApplyMove(t *testing.T) {
	t.Run("capture from the 4x4 example", func(t *testing.T) {
		gs := mustState(t, 4, 4, 10, bossUnit(1, 3, 1), playerUnit(2, 1, 1))
		mg := NewMoveGenerator(verticalSlide, NewValueCalculator(DefaultValueWeights()), 1)

		moves := mg.Generate(gs, Boss)
		capture := Move{UnitID: 1, To: Position{Row: 1, Col: 1}}
		found := false
		for _, m := range moves {
			if m.UnitID == capture.UnitID && m.To == capture.To {
				require.True(t, m.Capture, "Move onto the player unit should be a capture")
				capture = m
				found = true
			}
		}
		require.True(t, found, "Boss should be able to capture at (1,1)")

		next := gs.ApplyMove(capture, Boss)

		require.Len(t, next.Units(), 1, "Player unit should be removed")
		boss, ok := next.UnitByID(1)
		require.True(t, ok)
		require.Equal(t, Position{Row: 1, Col: 1}, boss.Pos, "Attacker should take the defender's cell")
		require.Equal(t, InfiniteLifetime, boss.Lifetime, "Capture should not touch lifetime")
		require.Equal(t, 0, boss.MovesLeft)
		_, ok = next.UnitAt(Position{Row: 3, Col: 1})
		require.False(t, ok, "Origin cell should be vacated")

		_, ok = gs.UnitByID(2)
		require.True(t, ok, "Original state should be untouched")
	})

	t.Run("unit with lifetime 1 dies after moving", func(t *testing.T) {
		u := bossUnit(1, 3, 1)
		u.Lifetime = 1
		gs := mustState(t, 4, 4, 10, u)

		next := gs.ApplyMove(Move{UnitID: 1, To: Position{Row: 2, Col: 1}}, Boss)

		_, ok := next.UnitByID(1)
		require.False(t, ok, "Expired unit should be removed")
		require.Empty(t, next.Units())
	})

	t.Run("lifetime decrements on a normal move", func(t *testing.T) {
		u := bossUnit(1, 3, 1)
		u.Lifetime = 3
		u.MovesLeft = 2
		gs := mustState(t, 4, 4, 10, u)

		next := gs.ApplyMove(Move{UnitID: 1, To: Position{Row: 2, Col: 1}}, Boss)

		got, ok := next.UnitByID(1)
		require.True(t, ok)
		require.Equal(t, 2, got.Lifetime)
		require.Equal(t, 1, got.MovesLeft)
		require.Equal(t, Position{Row: 2, Col: 1}, got.Pos)
	})

	t.Run("boss reaching row 0 strikes the player", func(t *testing.T) {
		u := bossUnit(1, 1, 0)
		u.Lifetime = 1
		gs := mustState(t, 4, 4, 10, u)

		next := gs.ApplyMove(Move{UnitID: 1, To: Position{Row: 0, Col: 0}}, Boss)

		require.Equal(t, 7, next.PlayerHP)
		require.Empty(t, next.Units(), "Striking unit should be consumed")
	})

	t.Run("player HP is floored at zero", func(t *testing.T) {
		gs := mustState(t, 4, 4, 2, bossUnit(1, 1, 0))

		next := gs.ApplyMove(Move{UnitID: 1, To: Position{Row: 0, Col: 0}}, Boss)

		require.Equal(t, 0, next.PlayerHP)
	})

	t.Run("player reaching the last row keeps its lifetime", func(t *testing.T) {
		u := playerUnit(2, 2, 0)
		u.Lifetime = 1
		gs := mustState(t, 4, 4, 10, u)

		next := gs.ApplyMove(Move{UnitID: 2, To: Position{Row: 3, Col: 0}}, Player)

		got, ok := next.UnitByID(2)
		require.True(t, ok, "Back-row arrival should not expire the unit")
		require.Equal(t, 1, got.Lifetime)
		require.Equal(t, 10, next.PlayerHP)
	})

	t.Run("defensive no-ops return the same state", func(t *testing.T) {
		gs := mustState(t, 4, 4, 10, bossUnit(1, 3, 1), playerUnit(2, 1, 1))

		require.Same(t, gs, gs.ApplyMove(PassMove, Boss), "Pass should not change the state")
		require.Same(t, gs, gs.ApplyMove(Move{UnitID: 99, To: Position{Row: 2, Col: 1}}, Boss), "Unknown unit should not change the state")
		require.Same(t, gs, gs.ApplyMove(Move{UnitID: 2, To: Position{Row: 2, Col: 1}}, Boss), "Team mismatch should not change the state")
	})
}

func TestApplyCapture(t *testing.T) {
	thorns := func(fraction float64) UnitEffect {
		return UnitEffect{Name: "thorns", Duration: Permanent, CanBeAttacked: true, Thorns: fraction}
	}
	capture := Move{UnitID: 1, To: Position{Row: 1, Col: 1}, Capture: true}

	t.Run("lethal thorns remove both units", func(t *testing.T) {
		attacker := bossUnit(1, 2, 1)
		attacker.Health = 2
		defender := playerUnit(2, 1, 1)
		defender.Effects = []UnitEffect{thorns(1)}
		gs := mustState(t, 4, 4, 10, attacker, defender)

		next := gs.ApplyMove(capture, Boss)

		require.Empty(t, next.Units(), "Both units should be removed")
	})

	t.Run("partial thorns wound the attacker", func(t *testing.T) {
		defender := playerUnit(2, 1, 1)
		defender.Effects = []UnitEffect{thorns(0.5)}
		gs := mustState(t, 4, 4, 10, bossUnit(1, 2, 1), defender)

		next := gs.ApplyMove(capture, Boss)

		require.Len(t, next.Units(), 1, "Only the defender should die")
		got, _ := next.UnitByID(1)
		require.Equal(t, 3, got.Health, "round(3*0.5)=2 should be reflected")
		require.Equal(t, Position{Row: 1, Col: 1}, got.Pos)
	})

	t.Run("stacked thorns add up before the blow lands", func(t *testing.T) {
		attacker := bossUnit(1, 2, 1)
		attacker.Health = 4
		defender := playerUnit(2, 1, 1)
		defender.Effects = []UnitEffect{thorns(0.5), thorns(0.5)}
		gs := mustState(t, 4, 4, 10, attacker, defender)

		next := gs.ApplyMove(capture, Boss)

		require.Empty(t, next.Units(), "Two reflections of 2 should kill a 4 health attacker")
	})

	t.Run("surviving defender", func(t *testing.T) {
		defender := playerUnit(2, 1, 1)
		defender.Health = 10
		gs := mustState(t, 4, 4, 10, bossUnit(1, 2, 1), defender)

		next := gs.ApplyMove(capture, Boss)

		require.Len(t, next.Units(), 2, "No unit should die")
		att, _ := next.UnitByID(1)
		def, _ := next.UnitByID(2)
		require.Equal(t, Position{Row: 2, Col: 1}, att.Pos, "Attacker should stay put")
		require.Equal(t, 7, def.Health)
		require.Equal(t, 0, att.MovesLeft)
	})

	t.Run("captures never stack units", func(t *testing.T) {
		for _, health := range []int{1, 3, 10} {
			defender := playerUnit(2, 1, 1)
			defender.Health = health
			gs := mustState(t, 4, 4, 10, bossUnit(1, 2, 1), defender, playerUnit(3, 0, 3))

			next := gs.ApplyMove(capture, Boss)

			diff := len(gs.Units()) - len(next.Units())
			require.Contains(t, []int{0, 1, 2}, diff)
			seen := map[Position]bool{}
			for _, u := range next.Units() {
				require.False(t, seen[u.Pos], "Two units share %s", u.Pos)
				seen[u.Pos] = true
			}
		}
	})
}

func TestHash(t *testing.T) {
	a := mustState(t, 4, 4, 10, bossUnit(1, 3, 1), playerUnit(2, 1, 1))
	b := mustState(t, 4, 4, 10, bossUnit(1, 3, 1), playerUnit(2, 1, 1))
	require.Equal(t, a.Hash(), b.Hash(), "Equal states should hash equally")

	moved := a.ApplyMove(Move{UnitID: 1, To: Position{Row: 2, Col: 1}}, Boss)
	require.NotEqual(t, a.Hash(), moved.Hash(), "Moving a unit should change the hash")
}
