package searcher

import (
	"slices"

	"bossai/game"
)

type moveKey struct {
	unitID int
	to     game.Position
}

var noKiller = moveKey{unitID: game.NoUnit}

func keyOf(m game.Move) moveKey {
	return moveKey{unitID: m.UnitID, to: m.To}
}

// orderingContext holds the killer and history tables of one search call.
type orderingContext struct {
	weights OrderingWeights
	killers map[int][2]moveKey // by remaining depth
	history map[moveKey]int
}

func newOrderingContext(weights OrderingWeights) *orderingContext {
	return &orderingContext{
		weights: weights,
		killers: make(map[int][2]moveKey),
		history: make(map[moveKey]int),
	}
}

// registerCutoff records a move that caused a cutoff at depth.
func (ctx *orderingContext) registerCutoff(depth int, m game.Move) {
	if m.IsPass() {
		return
	}
	key := keyOf(m)
	ctx.history[key] += depth*depth + 1

	if m.Capture {
		return
	}
	killers, ok := ctx.killers[depth]
	if !ok {
		killers = [2]moveKey{noKiller, noKiller}
	}
	if killers[0] != key {
		killers[1] = killers[0]
		killers[0] = key
		ctx.killers[depth] = killers
	}
}

func (ctx *orderingContext) score(depth int, m game.Move) float64 {
	w := ctx.weights
	key := keyOf(m)
	score := 0.0

	if killers, ok := ctx.killers[depth]; ok {
		if killers[0] == key {
			score += w.Killer
		} else if killers[1] == key {
			score += w.Killer / 2
		}
	}
	if m.Capture {
		score += w.Capture
	}
	score += w.History * float64(ctx.history[key])
	score += m.Heuristic + w.Forward*float64(m.Forward)
	return score
}

// order returns moves sorted by descending ordering score. The input is
// already in generator order, which the stable sort keeps for ties.
func (ctx *orderingContext) order(depth int, moves []game.Move) []game.Move {
	type scored struct {
		move  game.Move
		score float64
	}
	ranked := make([]scored, len(moves))
	for i, m := range moves {
		ranked[i] = scored{move: m, score: ctx.score(depth, m)}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})

	ordered := make([]game.Move, len(ranked))
	for i, r := range ranked {
		ordered[i] = r.move
	}
	return ordered
}
