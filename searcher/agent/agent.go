package agent

import (
	"bossai/experiments/metrics"
	"bossai/game"
)

type Agent interface {
	// FindMove returns the move to play from state and the metrics of the search behind it
	FindMove(state *game.GameState) (game.Move, metrics.SearchMetric)
}
