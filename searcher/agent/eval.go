package agent

import (
	"bossai/experiments/metrics"
	"bossai/game"
	"bossai/searcher"

	"github.com/rs/zerolog/log"
)

type searchAgent struct {
	minimax *searcher.Minimax
	depth   int
	team    game.Team
}

// NewBossAgent returns an agent that plays the boss side with a fixed-depth
// minimax search.
func NewBossAgent(minimax *searcher.Minimax, depth int) Agent {
	return searchAgent{minimax: minimax, depth: depth, team: game.Boss}
}

// NewSearchAgent returns an agent that searches for either team.
func NewSearchAgent(minimax *searcher.Minimax, depth int, team game.Team) Agent {
	return searchAgent{minimax: minimax, depth: depth, team: team}
}

func (a searchAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric) {
	if a.depth <= 0 {
		log.Warn().Msgf("No %s move found at depth %d, passing", a.team, a.depth)
		return game.PassMove, metrics.SearchMetric{Depth: a.depth}
	}
	move, _, metric := a.minimax.Search(state, a.depth, a.team)
	return move, metric
}
