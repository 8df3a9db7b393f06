package player

import (
	"bossai/game"
	"bossai/searcher"
)

// Controller picks the player's moves during a match. Returning a pass ends
// the player's turn.
type Controller interface {
	NextMove(state *game.GameState) game.Move
}

type searchController struct {
	minimax *searcher.Minimax
	depth   int
}

// NewSearchController plays the player side with the same minimax search the
// boss uses, minimising the boss evaluation.
func NewSearchController(minimax *searcher.Minimax, depth int) Controller {
	return searchController{minimax: minimax, depth: depth}
}

func (c searchController) NextMove(state *game.GameState) game.Move {
	move, _ := c.minimax.FindBestMove(state, c.depth, game.Player)
	return move
}
