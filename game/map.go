package game

import (
	"fmt"

	"bossai/utils"
)

// Position is a board cell, row-major with row 0 at the player's back row.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Offset returns the cell reached by moving dRow rows and dCol columns.
func (p Position) Offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Board holds the static geometry shared by every state of one search.
type Board struct {
	Rows int
	Cols int
}

// InBounds checks if a cell lies on the board.
func (b Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.Rows && p.Col >= 0 && p.Col < b.Cols
}

func (b Board) index(p Position) int {
	return p.Row*b.Cols + p.Col
}

func (b Board) cells() int {
	return b.Rows * b.Cols
}

// BackRow returns the row a team must reach to strike the opposing side:
// row 0 for the boss, the last row for the player.
func (b Board) BackRow(t Team) int {
	if t == Boss {
		return 0
	}
	return b.Rows - 1
}

// HomeRow is the row a team defends, i.e. the opponent's BackRow.
func (b Board) HomeRow(t Team) int {
	return b.BackRow(t.Opponent())
}

// DistanceFromHome counts rows between a cell and the team's own home row.
func (b Board) DistanceFromHome(t Team, p Position) int {
	return utils.Abs(p.Row - b.HomeRow(t))
}

// DistanceToBackRow counts rows left before the team reaches its target row.
func (b Board) DistanceToBackRow(t Team, p Position) int {
	return utils.Abs(p.Row - b.BackRow(t))
}

// CenterBias is larger the closer a column sits to the board's middle.
func (b Board) CenterBias(col int) float64 {
	center := float64(b.Cols-1) / 2
	off := float64(col) - center
	if off < 0 {
		off = -off
	}
	return center - off
}
