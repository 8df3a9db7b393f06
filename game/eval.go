package game

import "bossai/utils"

// Weights are the linear coefficients of the boss evaluation. Penalties are
// stored as positive magnitudes and subtracted.
type Weights struct {
	WinScore        float64 `yaml:"win_score"`
	PlayerHP        float64 `yaml:"player_hp"`
	BossUnitValue   float64 `yaml:"boss_unit_value"`
	PlayerUnitValue float64 `yaml:"player_unit_value"`

	BossAdvance   float64 `yaml:"boss_advance"`
	PlayerAdvance float64 `yaml:"player_advance"`
	BossCenter    float64 `yaml:"boss_center"`
	PlayerCenter  float64 `yaml:"player_center"`

	LifetimeOne      float64 `yaml:"lifetime_one"`
	LifetimeShort    float64 `yaml:"lifetime_short"`
	InfiniteLifetime float64 `yaml:"infinite_lifetime"`

	BackRowThreat float64 `yaml:"back_row_threat"`

	SpawnRows            int     `yaml:"spawn_rows"`
	SpawnThreat          float64 `yaml:"spawn_threat"`
	UnattackableDiscount float64 `yaml:"unattackable_discount"`
	DiscountTurns        float64 `yaml:"discount_turns"`

	Danger     float64 `yaml:"danger"`
	Undefended float64 `yaml:"undefended"`

	BossMobility   float64 `yaml:"boss_mobility"`
	PlayerMobility float64 `yaml:"player_mobility"`
}

func DefaultWeights() Weights {
	return Weights{
		WinScore:             100000,
		PlayerHP:             50,
		BossUnitValue:        1,
		PlayerUnitValue:      1,
		BossAdvance:          4,
		PlayerAdvance:        12,
		BossCenter:           1,
		PlayerCenter:         1,
		LifetimeOne:          15,
		LifetimeShort:        5,
		InfiniteLifetime:     5,
		BackRowThreat:        6,
		SpawnRows:            2,
		SpawnThreat:          20,
		UnattackableDiscount: 0.8,
		DiscountTurns:        3,
		Danger:               10,
		Undefended:           15,
		BossMobility:         0.5,
		PlayerMobility:       1,
	}
}

// Evaluator is the static boss-perspective scoring function.
type Evaluator struct {
	weights Weights
	rules   Rules
	values  *ValueCalculator
	moves   *MoveGenerator
}

func NewEvaluator(weights Weights, valueWeights ValueWeights, rules Rules) *Evaluator {
	values := NewValueCalculator(valueWeights)
	return &Evaluator{
		weights: weights,
		rules:   rules,
		values:  values,
		moves:   NewMoveGenerator(rules, values, 0),
	}
}

// Evaluate scores state for the boss; positive favours the boss. A state
// where the player is dead scores WinScore plus the remaining depth so that
// quicker wins rank higher.
func (ev *Evaluator) Evaluate(state *GameState, depth int) float64 {
	w := ev.weights
	if state.PlayerHP <= 0 {
		return w.WinScore + float64(depth)
	}

	attacks := BuildAttackMap(state, ev.rules)
	score := -w.PlayerHP * float64(state.PlayerHP)

	for _, u := range state.Units() {
		if !u.IsAlive() {
			continue
		}
		value := ev.values.Value(u)
		center := state.CenterBias(u.Pos.Col)

		if u.Team == Player {
			score -= w.PlayerUnitValue * value
			score -= w.PlayerAdvance / float64(1+state.DistanceToBackRow(Player, u.Pos))
			score -= w.PlayerCenter * center
			continue
		}

		score += w.BossUnitValue * value
		score += w.BossAdvance * float64(state.DistanceFromHome(Boss, u.Pos))
		score += w.BossCenter * center
		score += ev.lifetimeScore(u)
		score += w.BackRowThreat * float64(u.EffectiveDamage()) / float64(1+state.DistanceToBackRow(Boss, u.Pos))
		score -= ev.spawnThreat(state, u)
		score -= ev.danger(attacks, u)
	}

	score += w.BossMobility * float64(len(ev.moves.Potential(state, Boss)))
	score -= w.PlayerMobility * float64(len(ev.moves.Potential(state, Player)))
	return score
}

func (ev *Evaluator) lifetimeScore(u Unit) float64 {
	switch {
	case u.Lifetime == InfiniteLifetime:
		return ev.weights.InfiniteLifetime
	case u.Lifetime == 1:
		return -ev.weights.LifetimeOne
	case u.Lifetime == 2 || u.Lifetime == 3:
		return -ev.weights.LifetimeShort
	}
	return 0
}

// spawnThreat penalises a boss unit standing right above the player's spawn
// zone with an empty diagonal cell inside the zone: a freshly spawned player
// unit could capture it from there.
func (ev *Evaluator) spawnThreat(state *GameState, u Unit) float64 {
	w := ev.weights
	if w.SpawnRows <= 0 || u.Pos.Row != w.SpawnRows {
		return 0
	}

	open := false
	for _, dCol := range []int{-1, 1} {
		cell := u.Pos.Offset(-1, dCol)
		if !state.InBounds(cell) || state.IsBlocked(cell) {
			continue
		}
		if _, occupied := state.UnitAt(cell); !occupied {
			open = true
			break
		}
	}
	if !open {
		return 0
	}

	penalty := w.SpawnThreat
	if !u.CanBeAttacked() {
		penalty *= 1 - w.UnattackableDiscount*ev.protectionShare(u)
	}
	return penalty
}

// protectionShare measures how long a unit stays unattackable, as a fraction
// of DiscountTurns.
func (ev *Evaluator) protectionShare(u Unit) float64 {
	remaining := 0
	for _, e := range u.Effects {
		if e.CanBeAttacked {
			continue
		}
		if e.Duration == Permanent {
			return 1
		}
		remaining = max(remaining, e.Remaining)
	}
	if ev.weights.DiscountTurns <= 0 {
		return 1
	}
	return utils.Clamp(float64(remaining)/ev.weights.DiscountTurns, 0, 1)
}

// danger penalises a boss unit that more player units threaten than boss
// units protect.
func (ev *Evaluator) danger(attacks AttackMap, u Unit) float64 {
	if !u.CanBeAttacked() {
		return 0
	}
	attackers := attacks.Count(Player, u.Pos)
	defenders := attacks.Count(Boss, u.Pos)
	if attackers <= defenders {
		return 0
	}
	penalty := ev.weights.Danger * float64(attackers-defenders)
	if defenders == 0 {
		penalty += ev.weights.Undefended
	}
	return penalty
}
