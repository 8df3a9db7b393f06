package searcher

import "bossai/game"

// Searcher chooses a move for team by looking depth plies ahead.
type Searcher interface {
	FindBestMove(state *game.GameState, depth int, team game.Team) (game.Move, float64)
}

var _ Searcher = (*Minimax)(nil)
