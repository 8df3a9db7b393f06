package gamemaster

import (
	"bossai/game"
	"bossai/utils"
)

// LiveEffect is a mutable effect attached to a live unit. Layer is resolved
// from an EffectLibrary by name and never travels over the wire.
type LiveEffect struct {
	Name         string         `json:"name" yaml:"name"`
	Permanent    bool           `json:"permanent" yaml:"permanent"`
	Remaining    int            `json:"remaining" yaml:"remaining"`
	Unattackable bool           `json:"unattackable" yaml:"unattackable"`
	Thorns       float64        `json:"thorns" yaml:"thorns"`
	Layer        game.StatLayer `json:"-" yaml:"-"`
}

type LiveUnit struct {
	Name      string        `json:"name" yaml:"name"`
	Team      game.Team     `json:"team" yaml:"team"`
	Type      game.UnitType `json:"type" yaml:"type"`
	Row       int           `json:"row" yaml:"row"`
	Col       int           `json:"col" yaml:"col"`
	Health    int           `json:"health" yaml:"health"`
	Damage    int           `json:"damage" yaml:"damage"`
	Lifetime  int           `json:"lifetime" yaml:"lifetime"`
	Worth     int           `json:"worth" yaml:"worth"`
	Moves     int           `json:"moves" yaml:"moves"`
	MovesLeft int           `json:"moves_left" yaml:"moves_left"`
	Effects   []*LiveEffect `json:"effects,omitempty" yaml:"effects,omitempty"`
}

func (u *LiveUnit) Pos() game.Position {
	return game.Position{Row: u.Row, Col: u.Col}
}

func (u *LiveUnit) IsAlive() bool {
	return u.Health > 0
}

type LiveTileEffect struct {
	Name      string `json:"name" yaml:"name"`
	Permanent bool   `json:"permanent" yaml:"permanent"`
	Remaining int    `json:"remaining" yaml:"remaining"`
	Blocks    bool   `json:"blocks" yaml:"blocks"`
}

type LiveTile struct {
	Row     int               `json:"row" yaml:"row"`
	Col     int               `json:"col" yaml:"col"`
	Effects []*LiveTileEffect `json:"effects" yaml:"effects"`
}

// Scene is the mutable board the game is actually played on. Searches never
// touch it: they work on GameState snapshots built from it.
type Scene struct {
	Rows     int         `json:"rows" yaml:"rows"`
	Cols     int         `json:"cols" yaml:"cols"`
	PlayerHP int         `json:"player_hp" yaml:"player_hp"`
	Units    []*LiveUnit `json:"units" yaml:"units"`
	Tiles    []*LiveTile `json:"tiles,omitempty" yaml:"tiles,omitempty"`
}

// UnitAt returns the living unit on a cell, or nil.
func (s *Scene) UnitAt(p game.Position) *LiveUnit {
	for _, u := range s.Units {
		if u != nil && u.IsAlive() && u.Pos() == p {
			return u
		}
	}
	return nil
}

func (s *Scene) contains(unit *LiveUnit) bool {
	return utils.FindIndex(s.Units, unit) >= 0
}

// remove drops a unit from the scene.
func (s *Scene) remove(unit *LiveUnit) {
	if i := utils.FindIndex(s.Units, unit); i >= 0 {
		s.Units = utils.RemoveAt(s.Units, i)
	}
}

func (s *Scene) blocked(p game.Position) bool {
	for _, tile := range s.Tiles {
		if tile == nil || tile.Row != p.Row || tile.Col != p.Col {
			continue
		}
		for _, e := range tile.Effects {
			if e != nil && e.Blocks {
				return true
			}
		}
	}
	return false
}

// CountUnits tallies the living units of a team.
func (s *Scene) CountUnits(t game.Team) int {
	n := 0
	for _, u := range s.Units {
		if u != nil && u.Team == t && u.IsAlive() {
			n++
		}
	}
	return n
}
