package game

import "bossai/utils"

// ValueWeights are the coefficients of the unit worth formula.
type ValueWeights struct {
	Damage           float64 `yaml:"damage"`
	Health           float64 `yaml:"health"`
	Worth            float64 `yaml:"worth"`
	MovesLeft        float64 `yaml:"moves_left"`
	InfiniteLifetime float64 `yaml:"infinite_lifetime"`
	LifetimePerTurn  float64 `yaml:"lifetime_per_turn"`
	Unattackable     float64 `yaml:"unattackable"`
	EffectDamage     float64 `yaml:"effect_damage"`
	EffectMoves      float64 `yaml:"effect_moves"`
	DecayPerTurn     float64 `yaml:"decay_per_turn"`
	DecayFloor       float64 `yaml:"decay_floor"`
}

func DefaultValueWeights() ValueWeights {
	return ValueWeights{
		Damage:           10,
		Health:           5,
		Worth:            2,
		MovesLeft:        3,
		InfiniteLifetime: 15,
		LifetimePerTurn:  2,
		Unattackable:     20,
		EffectDamage:     8,
		EffectMoves:      4,
		DecayPerTurn:     0.25,
		DecayFloor:       0.25,
	}
}

// ValueCalculator scores how much a unit is worth to its side right now.
type ValueCalculator struct {
	weights ValueWeights
}

func NewValueCalculator(weights ValueWeights) *ValueCalculator {
	return &ValueCalculator{weights: weights}
}

func (vc *ValueCalculator) Value(u Unit) float64 {
	w := vc.weights
	value := w.Damage*float64(u.Damage) +
		w.Health*float64(u.Health) +
		w.Worth*float64(u.Worth) +
		w.MovesLeft*float64(u.MovesLeft)

	if u.Lifetime == InfiniteLifetime {
		value += w.InfiniteLifetime
	} else if u.Lifetime > 0 {
		value += w.LifetimePerTurn * float64(u.Lifetime)
	}

	if !u.CanBeAttacked() {
		value += w.Unattackable
	}

	for _, e := range u.Effects {
		if e.Layer == nil {
			continue
		}
		dDamage := e.Layer.ModifyDamage(u.Damage) - u.Damage
		dMoves := e.Layer.ModifyMoveCount(u.BaseMoves) - u.BaseMoves
		contribution := w.EffectDamage*float64(dDamage) + w.EffectMoves*float64(dMoves)
		value += contribution * vc.decay(e)
	}
	return value
}

// decay shrinks a temporary buff's value as it nears expiry. Permanent
// effects count in full.
func (vc *ValueCalculator) decay(e UnitEffect) float64 {
	if e.Duration == Permanent {
		return 1
	}
	return utils.Clamp(float64(e.Remaining)*vc.weights.DecayPerTurn, vc.weights.DecayFloor, 1)
}
