package game

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math"

	"bossai/utils"
)

var (
	ErrCellTaken   = errors.New("cell already occupied")
	ErrOutOfBounds = errors.New("position out of bounds")
)

const emptyCell = -1

// GameState is an immutable snapshot of one board instant. Every transition
// returns a new GameState; nothing reachable from a GameState is ever
// written to after construction, so read-only slices may be shared between
// states.
type GameState struct {
	Board
	PlayerHP int

	units []Unit         // live units in stable order
	grid  []int          // unit index per cell, emptyCell if none
	tiles [][]TileEffect // tile effects per cell
}

// NewGameState validates the given snapshot data and builds the root state
// of a search.
func NewGameState(board Board, playerHP int, units []Unit, tiles map[Position][]TileEffect) (*GameState, error) {
	if board.Rows <= 0 || board.Cols <= 0 {
		return nil, fmt.Errorf("invalid board size %dx%d", board.Rows, board.Cols)
	}

	seen := make(map[int]bool, len(units))
	for _, u := range units {
		if !board.InBounds(u.Pos) {
			return nil, fmt.Errorf("unit %d at %s: %w", u.ID, u.Pos, ErrOutOfBounds)
		}
		if !u.IsAlive() {
			return nil, fmt.Errorf("unit %d is not alive", u.ID)
		}
		if u.ID == NoUnit || seen[u.ID] {
			return nil, fmt.Errorf("invalid or duplicate unit id %d", u.ID)
		}
		seen[u.ID] = true
	}

	cellTiles := make([][]TileEffect, board.cells())
	for pos, effects := range tiles {
		if !board.InBounds(pos) {
			return nil, fmt.Errorf("tile effects at %s: %w", pos, ErrOutOfBounds)
		}
		cellTiles[board.index(pos)] = append([]TileEffect(nil), effects...)
	}

	unitsCopy := make([]Unit, len(units))
	copy(unitsCopy, units)

	gs := newState(board, playerHP, unitsCopy, cellTiles)
	if gs == nil {
		return nil, ErrCellTaken
	}
	return gs, nil
}

// newState builds the lookup grid. It returns nil if two units share a cell,
// which can only happen for malformed input.
func newState(board Board, playerHP int, units []Unit, tiles [][]TileEffect) *GameState {
	grid := make([]int, board.cells())
	for i := range grid {
		grid[i] = emptyCell
	}
	for i, u := range units {
		idx := board.index(u.Pos)
		if grid[idx] != emptyCell {
			return nil
		}
		grid[idx] = i
	}
	return &GameState{
		Board:    board,
		PlayerHP: max(playerHP, 0),
		units:    units,
		grid:     grid,
		tiles:    tiles,
	}
}

func (gs *GameState) derive(units []Unit, playerHP int) *GameState {
	return newState(gs.Board, playerHP, units, gs.tiles)
}

func (gs *GameState) copyUnits() []Unit {
	units := make([]Unit, len(gs.units))
	copy(units, gs.units)
	return units
}

// Units returns all live units in stable order. The slice must not be modified.
func (gs *GameState) Units() []Unit {
	return gs.units
}

// UnitByID finds a unit by its id.
func (gs *GameState) UnitByID(id int) (Unit, bool) {
	if i := gs.indexOf(id); i >= 0 {
		return gs.units[i], true
	}
	return Unit{}, false
}

func (gs *GameState) indexOf(id int) int {
	for i := range gs.units {
		if gs.units[i].ID == id {
			return i
		}
	}
	return -1
}

// UnitAt returns the unit occupying a cell.
func (gs *GameState) UnitAt(p Position) (Unit, bool) {
	if !gs.InBounds(p) {
		return Unit{}, false
	}
	if i := gs.grid[gs.index(p)]; i != emptyCell {
		return gs.units[i], true
	}
	return Unit{}, false
}

// TileEffects returns the effects lying on a cell. The slice must not be
// modified.
func (gs *GameState) TileEffects(p Position) []TileEffect {
	if !gs.InBounds(p) {
		return nil
	}
	return gs.tiles[gs.index(p)]
}

// IsBlocked reports whether a tile effect prevents moving onto or through p.
func (gs *GameState) IsBlocked(p Position) bool {
	for _, e := range gs.TileEffects(p) {
		if e.BlocksTile {
			return true
		}
	}
	return false
}

// CountUnits tallies the live units of a team.
func (gs *GameState) CountUnits(t Team) int {
	n := 0
	for _, u := range gs.units {
		if u.Team == t {
			n++
		}
	}
	return n
}

// ApplyMove returns the state after team plays move. A pass, an unknown unit
// or a unit of the other team leaves the state unchanged and the same pointer
// is returned.
func (gs *GameState) ApplyMove(move Move, team Team) *GameState {
	if move.IsPass() {
		return gs
	}
	idx := gs.indexOf(move.UnitID)
	if idx < 0 {
		return gs
	}
	mover := gs.units[idx]
	if mover.Team != team || !gs.InBounds(move.To) {
		return gs
	}

	if target := gs.grid[gs.index(move.To)]; target != emptyCell {
		if gs.units[target].Team == team {
			return gs
		}
		return gs.applyCapture(idx, target)
	}

	units := gs.copyUnits()
	playerHP := gs.PlayerHP

	if move.To.Row == gs.BackRow(team) {
		if team == Boss {
			// The unit is spent delivering its attack on the player.
			playerHP = max(playerHP-mover.EffectiveDamage(), 0)
			return gs.derive(utils.RemoveAt(units, idx), playerHP)
		}
		units[idx] = mover.WithPos(move.To).WithMovesLeft(mover.MovesLeft - 1)
		return gs.derive(units, playerHP)
	}

	moved := mover.WithPos(move.To).WithMovesLeft(mover.MovesLeft - 1)
	if moved.Lifetime > 0 {
		moved = moved.WithLifetime(moved.Lifetime - 1)
		if moved.Lifetime == 0 {
			return gs.derive(utils.RemoveAt(units, idx), playerHP)
		}
	}
	units[idx] = moved
	return gs.derive(units, playerHP)
}

// applyCapture resolves combat between the attacker and defender at the
// given unit indices. Thorns on the defender are resolved first, one source
// after the other; if they kill the attacker both units are removed and the
// blow never lands.
func (gs *GameState) applyCapture(attackerIdx, defenderIdx int) *GameState {
	attacker := gs.units[attackerIdx]
	defender := gs.units[defenderIdx]
	damage := attacker.EffectiveDamage()

	attackerHealth := attacker.Health
	for _, e := range defender.Effects {
		if e.Thorns <= 0 {
			continue
		}
		attackerHealth -= int(math.Round(float64(damage) * e.Thorns))
		if attackerHealth <= 0 {
			first, second := max(attackerIdx, defenderIdx), min(attackerIdx, defenderIdx)
			units := utils.RemoveAt(gs.units, first)
			return gs.derive(utils.RemoveAt(units, second), gs.PlayerHP)
		}
	}

	units := gs.copyUnits()
	attacker = attacker.WithHealth(attackerHealth).WithMovesLeft(attacker.MovesLeft - 1)

	defenderHealth := defender.Health - damage
	if defenderHealth <= 0 {
		units[attackerIdx] = attacker.WithPos(defender.Pos)
		return gs.derive(utils.RemoveAt(units, defenderIdx), gs.PlayerHP)
	}

	units[attackerIdx] = attacker
	units[defenderIdx] = defender.WithHealth(defenderHealth)
	return gs.derive(units, gs.PlayerHP)
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	write := func(v int) {
		binary.Write(hasher, binary.LittleEndian, int64(v))
	}

	write(gs.Rows)
	write(gs.Cols)
	write(gs.PlayerHP)

	for _, u := range gs.units {
		write(u.ID)
		write(int(u.Team))
		write(int(u.Type))
		write(u.Pos.Row)
		write(u.Pos.Col)
		write(u.Health)
		write(u.Lifetime)
		write(u.MovesLeft)
		for _, e := range u.Effects {
			write(int(e.Duration))
			write(e.Remaining)
		}
	}

	for cell, effects := range gs.tiles {
		for _, e := range effects {
			write(cell)
			write(int(e.Duration))
			write(e.Remaining)
		}
	}

	return StateHash(hasher.Sum64())
}
