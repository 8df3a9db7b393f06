package game

import "fmt"

// UnitType selects the movement rule set of a unit.
type UnitType int

const (
	Pawn UnitType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

var unitTypeNames = []string{"pawn", "knight", "bishop", "rook", "queen", "king"}

func (u UnitType) String() string {
	if int(u) >= 0 && int(u) < len(unitTypeNames) {
		return unitTypeNames[u]
	}
	return "unknown"
}

// ParseUnitType maps a lower-case type name back to its UnitType.
func ParseUnitType(name string) (UnitType, bool) {
	for i, n := range unitTypeNames {
		if n == name {
			return UnitType(i), true
		}
	}
	return 0, false
}

func (u UnitType) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *UnitType) UnmarshalText(text []byte) error {
	kind, ok := ParseUnitType(string(text))
	if !ok {
		return fmt.Errorf("unknown unit type %q", text)
	}
	*u = kind
	return nil
}

// NoUnit is the id carried by a pass move.
const NoUnit = -1

// Unit is an immutable snapshot of one unit. The With* methods return
// updated copies; the Effects slice is shared and must never be written to.
type Unit struct {
	ID        int // stable within one search tree
	Team      Team
	Type      UnitType
	Pos       Position
	Health    int
	Damage    int // base damage before effects
	Lifetime  int // turns left, InfiniteLifetime if it never expires
	Worth     int // resource value granted to the other side on defeat
	BaseMoves int // move allowance per phase before effects
	MovesLeft int
	Effects   []UnitEffect
}

func (u Unit) IsAlive() bool {
	return u.Health > 0
}

// CanBeAttacked is false while any active effect forbids it.
func (u Unit) CanBeAttacked() bool {
	for _, e := range u.Effects {
		if !e.CanBeAttacked {
			return false
		}
	}
	return true
}

// EffectiveDamage folds base damage through every active stat layer.
func (u Unit) EffectiveDamage() int {
	damage := u.Damage
	for _, e := range u.Effects {
		if e.Layer != nil {
			damage = e.Layer.ModifyDamage(damage)
		}
	}
	return max(damage, 0)
}

// EffectiveMoves folds the base move allowance through every stat layer.
func (u Unit) EffectiveMoves() int {
	moves := u.BaseMoves
	for _, e := range u.Effects {
		if e.Layer != nil {
			moves = e.Layer.ModifyMoveCount(moves)
		}
	}
	return max(moves, 0)
}

func (u Unit) WithPos(p Position) Unit {
	u.Pos = p
	return u
}

func (u Unit) WithHealth(health int) Unit {
	u.Health = max(health, 0)
	return u
}

func (u Unit) WithMovesLeft(moves int) Unit {
	u.MovesLeft = max(moves, 0)
	return u
}

func (u Unit) WithLifetime(lifetime int) Unit {
	u.Lifetime = lifetime
	return u
}

func (u Unit) WithEffects(effects []UnitEffect) Unit {
	u.Effects = effects
	return u
}
