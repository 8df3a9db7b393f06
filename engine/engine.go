package engine

import (
	"context"

	"bossai/experiments/metrics"
	"bossai/game"
	"bossai/gamemaster"
)

const (
	MaxTurns        = 500
	MaxMovesPerTurn = 64
)

type Engine interface {
	// Run plays a match till there's a winner or the turn cap is reached
	Run(ctx context.Context) (metrics.MatchMetric, []metrics.MoveMetric, error)
}

// Table is the live board turns are played on. gamemaster.LocalEngine is the
// implementation used outside tests.
type Table interface {
	Snapshot() (*game.GameState, map[int]*gamemaster.LiveUnit, error)
	Play(team game.Team, byID map[int]*gamemaster.LiveUnit, move game.Move) error
	BeginPhase(team game.Team) error
	IsGameOver() bool
	PlayerHP() int
	CountUnits(team game.Team) int
}

var _ Table = (*gamemaster.LocalEngine)(nil)
