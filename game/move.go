package game

import "fmt"

// Move is a candidate action: either a pass, ending the acting team's phase,
// or one unit moving or capturing. Forward and Heuristic only drive move
// ordering.
type Move struct {
	UnitID    int
	To        Position
	Capture   bool
	Forward   int     // rows gained toward the opponent's back row
	Heuristic float64 // cheap static delta used for ordering
}

// PassMove is the sentinel for ending the phase.
var PassMove = Move{UnitID: NoUnit}

func (m Move) IsPass() bool {
	return m.UnitID == NoUnit
}

func (m Move) String() string {
	if m.IsPass() {
		return "pass"
	}
	verb := "->"
	if m.Capture {
		verb = "x"
	}
	return fmt.Sprintf("unit %d %s %s", m.UnitID, verb, m.To)
}
