package game

import (
	"slices"

	"github.com/rs/zerolog/log"
)

// MoveGenerator enumerates legal moves from a state, pre-sorted so that the
// likeliest good moves come first.
type MoveGenerator struct {
	rules        Rules
	values       *ValueCalculator
	forwardBonus float64
}

func NewMoveGenerator(rules Rules, values *ValueCalculator, forwardBonus float64) *MoveGenerator {
	return &MoveGenerator{rules: rules, values: values, forwardBonus: forwardBonus}
}

// Generate lists the moves of every team unit that still has moves left
// this phase.
func (mg *MoveGenerator) Generate(state *GameState, team Team) []Move {
	return mg.generate(state, team, true)
}

// Potential lists the moves team units could make if every budget were
// refilled. It backs mobility scoring and terminal detection.
func (mg *MoveGenerator) Potential(state *GameState, team Team) []Move {
	return mg.generate(state, team, false)
}

func (mg *MoveGenerator) generate(state *GameState, team Team, budgeted bool) []Move {
	var moves []Move
	for _, u := range state.Units() {
		if u.Team != team || !u.IsAlive() {
			continue
		}
		if budgeted && u.MovesLeft <= 0 {
			continue
		}
		moves = mg.appendUnitMoves(moves, state, u)
	}
	sortMoves(moves)
	return moves
}

func (mg *MoveGenerator) appendUnitMoves(moves []Move, state *GameState, u Unit) []Move {
	rules, ok := mg.rules.MovesFor(u.Type)
	if !ok {
		log.Debug().Msgf("No movement rules for %s, unit %d stays put", u.Type, u.ID)
		return moves
	}

	attackerValue := -1.0
	for _, r := range rules {
		dRow, dCol := r.Delta(u.Team)
		target := u.Pos
		for step := 0; step < r.steps(state.Board); step++ {
			target = target.Offset(dRow, dCol)
			if !state.InBounds(target) || state.IsBlocked(target) {
				break
			}
			occupant, occupied := state.UnitAt(target)
			if !occupied {
				if r.Move {
					moves = append(moves, mg.newMove(u, target))
				}
				continue
			}
			if occupant.Team != u.Team && occupant.CanBeAttacked() && r.Capture {
				if attackerValue < 0 {
					attackerValue = mg.values.Value(u)
				}
				move := mg.newMove(u, target)
				move.Capture = true
				move.Heuristic += 2*mg.values.Value(occupant) - attackerValue
				moves = append(moves, move)
			}
			break
		}
	}
	return moves
}

func (mg *MoveGenerator) newMove(u Unit, to Position) Move {
	forward := (to.Row - u.Pos.Row) * u.Team.Forward()
	return Move{
		UnitID:    u.ID,
		To:        to,
		Forward:   forward,
		Heuristic: mg.forwardBonus * float64(forward),
	}
}

// sortMoves orders captures first, then by forward progress, then by the
// static heuristic. The sort is stable so generation order breaks ties.
func sortMoves(moves []Move) {
	slices.SortStableFunc(moves, func(a, b Move) int {
		if a.Capture != b.Capture {
			if a.Capture {
				return -1
			}
			return 1
		}
		if a.Forward != b.Forward {
			return b.Forward - a.Forward
		}
		switch {
		case a.Heuristic > b.Heuristic:
			return -1
		case a.Heuristic < b.Heuristic:
			return 1
		}
		return 0
	})
}
