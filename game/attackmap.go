package game

// AttackMap counts, per team and cell, how many units of that team could
// capture onto the cell. It is a static threat picture and ignores whose turn
// it is or how many moves a unit has left.
type AttackMap struct {
	board  Board
	counts [2][]int
}

// BuildAttackMap scans every living unit's capture rules over the state.
func BuildAttackMap(state *GameState, rules Rules) AttackMap {
	am := AttackMap{board: state.Board}
	am.counts[Boss] = make([]int, state.cells())
	am.counts[Player] = make([]int, state.cells())

	for _, u := range state.Units() {
		if !u.IsAlive() {
			continue
		}
		moveRules, ok := rules.MovesFor(u.Type)
		if !ok {
			continue
		}
		counts := am.counts[u.Team]
		for _, r := range moveRules {
			if !r.Capture {
				continue
			}
			dRow, dCol := r.Delta(u.Team)

			if r.Kind == Jump {
				target := u.Pos.Offset(dRow, dCol)
				if state.InBounds(target) {
					counts[state.index(target)]++
				}
				continue
			}

			target := u.Pos
			for step := 0; step < r.steps(state.Board); step++ {
				target = target.Offset(dRow, dCol)
				if !state.InBounds(target) || state.IsBlocked(target) {
					break
				}
				occupant, occupied := state.UnitAt(target)
				if occupied && occupant.Team == u.Team {
					break
				}
				counts[state.index(target)]++
				if occupied {
					break
				}
			}
		}
	}
	return am
}

// Count returns the number of team units threatening p.
func (am AttackMap) Count(t Team, p Position) int {
	if !am.board.InBounds(p) {
		return 0
	}
	return am.counts[t][am.board.index(p)]
}
