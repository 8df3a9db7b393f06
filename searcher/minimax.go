package searcher

import (
	"math"

	"bossai/experiments/metrics"
	"bossai/game"

	"github.com/rs/zerolog/log"
)

type Option func(m *Minimax)

// Minimax is a depth-limited alpha-beta search over game states. The boss
// maximises the evaluation and the player minimises it. A Minimax is only
// configuration: every call builds its own ordering tables and collector, so
// one instance may serve concurrent searches.
type Minimax struct {
	evaluate     game.Evaluate
	rules        game.Rules
	valueWeights game.ValueWeights
	ordering     OrderingWeights
	pruning      bool
	collect      bool
	moves        *game.MoveGenerator
}

func WithEvaluator(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithRules(rules game.Rules) Option {
	return func(m *Minimax) {
		if rules != nil {
			m.rules = rules
		}
	}
}

func WithValueWeights(weights game.ValueWeights) Option {
	return func(m *Minimax) {
		m.valueWeights = weights
	}
}

func WithOrdering(weights OrderingWeights) Option {
	return func(m *Minimax) {
		m.ordering = weights
	}
}

// WithoutPruning turns the search into plain minimax. Only useful to check
// the pruned search against.
func WithoutPruning() Option {
	return func(m *Minimax) {
		m.pruning = false
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.collect = true
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		rules:        game.NewStandardRules(),
		valueWeights: game.DefaultValueWeights(),
		ordering:     DefaultOrderingWeights(),
		pruning:      true,
	}
	for _, option := range options {
		option(m)
	}
	if m.evaluate == nil {
		m.evaluate = game.NewEvaluator(game.DefaultWeights(), m.valueWeights, m.rules).Evaluate
	}
	m.moves = game.NewMoveGenerator(m.rules, game.NewValueCalculator(m.valueWeights), m.ordering.Forward)
	return m
}

// TryFindBestMove picks the boss's next move. It fails only for a
// non-positive depth; otherwise the worst case is a pass.
func (m *Minimax) TryFindBestMove(state *game.GameState, depth int) (game.Move, bool) {
	if depth <= 0 {
		return game.PassMove, false
	}
	move, _ := m.FindBestMove(state, depth, game.Boss)
	return move, true
}

// EvaluateStateWithSearch returns the searched score of state with team to
// act, without committing to a move.
func (m *Minimax) EvaluateStateWithSearch(state *game.GameState, depth int, team game.Team) float64 {
	if depth <= 0 {
		return m.evaluate(state, 0)
	}
	_, score := m.FindBestMove(state, depth, team)
	return score
}

// FindBestMove searches depth plies ahead for team and returns the chosen
// move with its score from the boss's perspective.
func (m *Minimax) FindBestMove(state *game.GameState, depth int, team game.Team) (game.Move, float64) {
	move, score, _ := m.Search(state, depth, team)
	return move, score
}

// Search is FindBestMove that also reports the work done. Among moves with
// the best score the pass wins, then the move generated first, so the choice
// does not depend on move ordering or pruning.
func (m *Minimax) Search(state *game.GameState, depth int, team game.Team) (game.Move, float64, metrics.SearchMetric) {
	collector := metrics.NewDummyCollector()
	if m.collect {
		collector = metrics.NewCollector()
	}
	collector.Start(depth, m.pruning)
	if depth <= 0 {
		return game.PassMove, m.evaluate(state, 0), collector.Complete()
	}

	s := &search{Minimax: m, ordering: newOrderingContext(m.ordering), metrics: collector}
	maximizing := team == game.Boss
	alpha, beta := math.Inf(-1), math.Inf(1)

	best, bestIndex := game.PassMove, -1
	bestScore := s.child(state, game.PassMove, depth, team, alpha, beta)
	alpha, beta = narrow(maximizing, bestScore, alpha, beta)

	generated := m.moves.Generate(state, team)
	index := make(map[moveKey]int, len(generated))
	for i, move := range generated {
		index[keyOf(move)] = i
	}

	for _, move := range s.ordering.order(depth, generated) {
		// Widen the window by one ulp so a move tying the best score comes
		// back exact instead of as a bound.
		lo, hi := alpha, beta
		if maximizing {
			lo = math.Nextafter(alpha, math.Inf(-1))
		} else {
			hi = math.Nextafter(beta, math.Inf(1))
		}
		score := s.child(state, move, depth, team, lo, hi)
		i := index[keyOf(move)]
		if better(maximizing, score, bestScore) || (score == bestScore && i < bestIndex) {
			best, bestScore, bestIndex = move, score, i
		}
		alpha, beta = narrow(maximizing, score, alpha, beta)
	}

	metric := collector.Complete()
	log.Debug().Msgf("%s picks %s scoring %.2f at depth %d (%d nodes)", team, best, bestScore, depth, metric.Nodes)
	return best, bestScore, metric
}

// IsTerminal is true once the player is dead or neither side could move even
// with a fresh move allowance.
func (m *Minimax) IsTerminal(state *game.GameState) bool {
	if state.PlayerHP <= 0 {
		return true
	}
	return len(m.moves.Potential(state, game.Boss)) == 0 && len(m.moves.Potential(state, game.Player)) == 0
}

type search struct {
	*Minimax
	ordering *orderingContext
	metrics  metrics.Collector
}

// child plays move for team and searches the resulting node. A concrete move
// keeps the same team acting; a pass starts the opponent's phase.
func (s *search) child(state *game.GameState, move game.Move, depth int, team game.Team, alpha, beta float64) float64 {
	if move.IsPass() {
		next := team.Opponent()
		return s.alphaBeta(game.BeginPhase(state, next), depth-1, next, alpha, beta)
	}
	return s.alphaBeta(state.ApplyMove(move, team), depth-1, team, alpha, beta)
}

func (s *search) alphaBeta(state *game.GameState, depth int, team game.Team, alpha, beta float64) float64 {
	s.metrics.AddNode()
	if depth <= 0 || s.IsTerminal(state) {
		s.metrics.AddLeaf()
		return s.evaluate(state, depth)
	}

	maximizing := team == game.Boss
	best := s.child(state, game.PassMove, depth, team, alpha, beta)
	alpha, beta = narrow(maximizing, best, alpha, beta)
	if s.pruning && alpha >= beta {
		s.metrics.AddCutoff()
		return best
	}

	for _, move := range s.ordering.order(depth, s.moves.Generate(state, team)) {
		score := s.child(state, move, depth, team, alpha, beta)
		if better(maximizing, score, best) {
			best = score
		}
		alpha, beta = narrow(maximizing, score, alpha, beta)
		if s.pruning && alpha >= beta {
			s.metrics.AddCutoff()
			s.ordering.registerCutoff(depth, move)
			break
		}
	}
	return best
}

func better(maximizing bool, score, best float64) bool {
	if maximizing {
		return score > best
	}
	return score < best
}

func narrow(maximizing bool, score, alpha, beta float64) (float64, float64) {
	if maximizing {
		return math.Max(alpha, score), beta
	}
	return alpha, math.Min(beta, score)
}
