package player

import (
	"math"

	"bossai/game"

	"golang.org/x/exp/rand"
)

type softmaxController struct {
	moves       *game.MoveGenerator
	temperature float64
	rand        *rand.Rand
}

// NewSoftmaxController samples among the player's legal moves, weighting each
// by its ordering heuristic. Lower temperatures play greedier; a temperature
// of zero always takes the best move. The controller never passes while a
// move is available.
func NewSoftmaxController(rules game.Rules, temperature float64, seed uint64) Controller {
	return &softmaxController{
		moves:       game.NewMoveGenerator(rules, game.NewValueCalculator(game.DefaultValueWeights()), 1),
		temperature: temperature,
		rand:        rand.New(rand.NewSource(seed)),
	}
}

func (c *softmaxController) NextMove(state *game.GameState) game.Move {
	moves := c.moves.Generate(state, game.Player)
	if len(moves) == 0 {
		return game.PassMove
	}
	if c.temperature <= 0 {
		return findMax(moves)
	}
	return moves[sample(c.rand, adjustTemperature(moves, c.temperature))]
}

// adjustTemperature turns move heuristics into sampling probabilities.
func adjustTemperature(moves []game.Move, temperature float64) []float64 {
	top := math.Inf(-1)
	for _, m := range moves {
		top = math.Max(top, m.Heuristic)
	}
	sum := 0.0
	policy := make([]float64, len(moves))
	for i, m := range moves {
		policy[i] = math.Exp((m.Heuristic - top) / temperature)
		sum += policy[i]
	}
	// Normalize
	for i := range policy {
		policy[i] /= sum
	}
	return policy
}

func sample(r *rand.Rand, policy []float64) int {
	sampled := r.Float64()
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(policy) - 1 // rounding
}

func findMax(moves []game.Move) game.Move {
	best := moves[0]
	for _, m := range moves[1:] {
		if m.Heuristic > best.Heuristic {
			best = m
		}
	}
	return best
}
