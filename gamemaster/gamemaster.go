package gamemaster

import (
	"fmt"

	"bossai/game"
)

// Stats are the starting numbers of a spawned unit.
type Stats struct {
	Health   int
	Damage   int
	Lifetime int
	Worth    int
	Moves    int
}

// DefaultStats returns the stock numbers of a unit type.
func DefaultStats(kind game.UnitType) Stats {
	switch kind {
	case game.Pawn:
		return Stats{Health: 2, Damage: 1, Lifetime: game.InfiniteLifetime, Worth: 1, Moves: 1}
	case game.Knight:
		return Stats{Health: 3, Damage: 2, Lifetime: game.InfiniteLifetime, Worth: 3, Moves: 1}
	case game.Bishop, game.Rook:
		return Stats{Health: 4, Damage: 2, Lifetime: game.InfiniteLifetime, Worth: 4, Moves: 1}
	case game.Queen:
		return Stats{Health: 5, Damage: 3, Lifetime: game.InfiniteLifetime, Worth: 8, Moves: 2}
	default:
		return Stats{Health: 6, Damage: 3, Lifetime: game.InfiniteLifetime, Worth: 10, Moves: 1}
	}
}

func NewScene(rows, cols, playerHP int) *Scene {
	return &Scene{Rows: rows, Cols: cols, PlayerHP: playerHP}
}

// Spawn places a new unit on an empty cell. Spawned units cannot move before
// their team's next phase starts.
func (s *Scene) Spawn(name string, team game.Team, kind game.UnitType, pos game.Position, stats Stats) (*LiveUnit, error) {
	board := game.Board{Rows: s.Rows, Cols: s.Cols}
	if !board.InBounds(pos) {
		return nil, fmt.Errorf("spawn %s at %s: %w", name, pos, game.ErrOutOfBounds)
	}
	if s.UnitAt(pos) != nil || s.blocked(pos) {
		return nil, fmt.Errorf("spawn %s at %s: %w", name, pos, game.ErrCellTaken)
	}
	unit := &LiveUnit{
		Name:     name,
		Team:     team,
		Type:     kind,
		Row:      pos.Row,
		Col:      pos.Col,
		Health:   stats.Health,
		Damage:   stats.Damage,
		Lifetime: stats.Lifetime,
		Worth:    stats.Worth,
		Moves:    stats.Moves,
	}
	s.Units = append(s.Units, unit)
	return unit, nil
}

// PlaceTile adds a tile effect to a cell.
func (s *Scene) PlaceTile(pos game.Position, effect *LiveTileEffect) {
	for _, tile := range s.Tiles {
		if tile != nil && tile.Row == pos.Row && tile.Col == pos.Col {
			tile.Effects = append(tile.Effects, effect)
			return
		}
	}
	s.Tiles = append(s.Tiles, &LiveTile{Row: pos.Row, Col: pos.Col, Effects: []*LiveTileEffect{effect}})
}

// StandardScene sets up the opening board used by experiments: the boss
// army on the top rows, the player's defenders near row 0.
func StandardScene(rows, cols, playerHP int) (*Scene, error) {
	if rows < 6 || cols < 5 {
		return nil, fmt.Errorf("standard scene needs at least 6x5 cells, got %dx%d", rows, cols)
	}
	s := NewScene(rows, cols, playerHP)
	back, front := rows-1, rows-2
	mid := cols / 2

	boss := []struct {
		kind game.UnitType
		pos  game.Position
	}{
		{game.Rook, game.Position{Row: back, Col: 0}},
		{game.Knight, game.Position{Row: back, Col: mid - 1}},
		{game.King, game.Position{Row: back, Col: mid}},
		{game.Bishop, game.Position{Row: back, Col: mid + 1}},
		{game.Rook, game.Position{Row: back, Col: cols - 1}},
	}
	for i, b := range boss {
		if _, err := s.Spawn(fmt.Sprintf("boss-%s-%d", b.kind, i), game.Boss, b.kind, b.pos, DefaultStats(b.kind)); err != nil {
			return nil, err
		}
	}
	for col := 1; col < cols-1; col += 2 {
		pos := game.Position{Row: front, Col: col}
		if _, err := s.Spawn(fmt.Sprintf("boss-pawn-%d", col), game.Boss, game.Pawn, pos, DefaultStats(game.Pawn)); err != nil {
			return nil, err
		}
	}

	for col := 0; col < cols; col += 2 {
		pos := game.Position{Row: 1, Col: col}
		if _, err := s.Spawn(fmt.Sprintf("player-pawn-%d", col), game.Player, game.Pawn, pos, DefaultStats(game.Pawn)); err != nil {
			return nil, err
		}
	}
	if _, err := s.Spawn("player-knight", game.Player, game.Knight, game.Position{Row: 0, Col: mid}, DefaultStats(game.Knight)); err != nil {
		return nil, err
	}
	return s, nil
}
