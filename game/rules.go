package game

// RuleKind distinguishes single-offset jumps from repeated slides.
type RuleKind int

const (
	Jump RuleKind = iota
	Slide
)

// MoveRule is one movement pattern of a unit type. Offsets are expressed
// relative to the unit's team: a positive Forward always heads toward the
// opponent's back row.
type MoveRule struct {
	Kind     RuleKind
	Forward  int
	Side     int
	MaxSteps int  // slides only, <= 0 means up to the board edge
	Capture  bool // may end on an attackable enemy
	Move     bool // may end on an empty cell
}

// Delta resolves the rule's offset into board coordinates for a team.
func (r MoveRule) Delta(t Team) (dRow, dCol int) {
	return r.Forward * t.Forward(), r.Side
}

func (r MoveRule) steps(b Board) int {
	if r.Kind == Jump {
		return 1
	}
	if r.MaxSteps <= 0 {
		return max(b.Rows, b.Cols)
	}
	return r.MaxSteps
}

// Rules is the read-only movement library keyed by unit type.
type Rules interface {
	MovesFor(t UnitType) ([]MoveRule, bool)
}

// RuleBook is a map-backed Rules.
type RuleBook map[UnitType][]MoveRule

func (rb RuleBook) MovesFor(t UnitType) ([]MoveRule, bool) {
	rules, ok := rb[t]
	return rules, ok
}
