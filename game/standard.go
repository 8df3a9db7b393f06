package game

var (
	orthogonal = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightHops = [][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// NewStandardRules returns the default movement library: chess-like patterns
// where pawns only advance.
func NewStandardRules() RuleBook {
	return RuleBook{
		Pawn: {
			{Kind: Jump, Forward: 1, Side: 0, Move: true},
			{Kind: Jump, Forward: 1, Side: 1, Capture: true},
			{Kind: Jump, Forward: 1, Side: -1, Capture: true},
		},
		Knight: jumps(knightHops),
		Bishop: slides(diagonal, 0),
		Rook:   slides(orthogonal, 0),
		Queen:  append(slides(orthogonal, 0), slides(diagonal, 0)...),
		King:   append(jumps(orthogonal), jumps(diagonal)...),
	}
}

func jumps(offsets [][2]int) []MoveRule {
	rules := make([]MoveRule, 0, len(offsets))
	for _, o := range offsets {
		rules = append(rules, MoveRule{Kind: Jump, Forward: o[0], Side: o[1], Capture: true, Move: true})
	}
	return rules
}

func slides(offsets [][2]int, maxSteps int) []MoveRule {
	rules := make([]MoveRule, 0, len(offsets))
	for _, o := range offsets {
		rules = append(rules, MoveRule{Kind: Slide, Forward: o[0], Side: o[1], MaxSteps: maxSteps, Capture: true, Move: true})
	}
	return rules
}
