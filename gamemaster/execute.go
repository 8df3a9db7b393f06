package gamemaster

import (
	"errors"
	"fmt"
	"math"

	"bossai/game"
)

var (
	ErrUnknownUnit = errors.New("unknown unit")
	ErrIllegalMove = errors.New("illegal move")
)

// Execute resolves a searched move against the live scene. byID must come
// from the BuildState call behind the searched state. A pass does nothing.
func Execute(scene *Scene, byID map[int]*LiveUnit, move game.Move) error {
	if move.IsPass() {
		return nil
	}
	unit, ok := byID[move.UnitID]
	if !ok || unit == nil || !unit.IsAlive() || !scene.contains(unit) {
		return fmt.Errorf("unit %d: %w", move.UnitID, ErrUnknownUnit)
	}

	to := move.To
	board := game.Board{Rows: scene.Rows, Cols: scene.Cols}
	if !board.InBounds(to) || scene.blocked(to) {
		return fmt.Errorf("%s moving to %s: %w", unit.Name, to, ErrIllegalMove)
	}
	if unit.MovesLeft <= 0 {
		return fmt.Errorf("%s has no moves left: %w", unit.Name, ErrIllegalMove)
	}

	if target := scene.UnitAt(to); target != nil {
		if target.Team == unit.Team || !attackable(target) {
			return fmt.Errorf("%s cannot capture %s: %w", unit.Name, target.Name, ErrIllegalMove)
		}
		scene.resolveCombat(unit, target)
		return nil
	}

	unit.MovesLeft--
	if to.Row == board.BackRow(unit.Team) {
		if unit.Team == game.Boss {
			scene.PlayerHP = max(scene.PlayerHP-effectiveDamage(unit), 0)
			unit.Health = 0
			scene.remove(unit)
			return nil
		}
		unit.Row, unit.Col = to.Row, to.Col
		return nil
	}

	unit.Row, unit.Col = to.Row, to.Col
	if unit.Lifetime > 0 {
		unit.Lifetime--
		if unit.Lifetime == 0 {
			unit.Health = 0
			scene.remove(unit)
		}
	}
	return nil
}

func (s *Scene) resolveCombat(attacker, defender *LiveUnit) {
	damage := effectiveDamage(attacker)
	for _, e := range defender.Effects {
		if e == nil || e.Thorns <= 0 {
			continue
		}
		attacker.Health -= int(math.Round(float64(damage) * e.Thorns))
		if attacker.Health <= 0 {
			attacker.Health = 0
			s.remove(attacker)
			s.remove(defender)
			return
		}
	}

	attacker.MovesLeft = max(attacker.MovesLeft-1, 0)
	defender.Health -= damage
	if defender.Health <= 0 {
		defender.Health = 0
		s.remove(defender)
		attacker.Row, attacker.Col = defender.Row, defender.Col
	}
}

func attackable(u *LiveUnit) bool {
	for _, e := range u.Effects {
		if e != nil && e.Unattackable {
			return false
		}
	}
	return true
}

func effectiveDamage(u *LiveUnit) int {
	return snapshotUnit(0, u).EffectiveDamage()
}
