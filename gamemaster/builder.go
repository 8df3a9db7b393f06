package gamemaster

import (
	"fmt"

	"bossai/game"
)

// BuildState snapshots the living part of a scene. Unit ids are assigned
// fresh on every build; the returned map resolves them back to live units.
func BuildState(scene *Scene) (*game.GameState, map[int]*LiveUnit, error) {
	byID := make(map[int]*LiveUnit, len(scene.Units))
	units := make([]game.Unit, 0, len(scene.Units))
	for _, lu := range scene.Units {
		if lu == nil || !lu.IsAlive() {
			continue
		}
		id := len(units)
		byID[id] = lu
		units = append(units, snapshotUnit(id, lu))
	}

	tiles := make(map[game.Position][]game.TileEffect)
	for _, tile := range scene.Tiles {
		if tile == nil {
			continue
		}
		pos := game.Position{Row: tile.Row, Col: tile.Col}
		for _, e := range tile.Effects {
			if e == nil {
				continue
			}
			tiles[pos] = append(tiles[pos], snapshotTileEffect(e))
		}
	}

	state, err := game.NewGameState(game.Board{Rows: scene.Rows, Cols: scene.Cols}, scene.PlayerHP, units, tiles)
	if err != nil {
		return nil, nil, fmt.Errorf("build state: %w", err)
	}
	return state, byID, nil
}

// SceneFromState turns a snapshot back into a scene, naming each unit
// "unit-<id>". Stat layers stay attached to the effects.
func SceneFromState(state *game.GameState) *Scene {
	scene := NewScene(state.Rows, state.Cols, state.PlayerHP)
	for _, u := range state.Units() {
		scene.Units = append(scene.Units, &LiveUnit{
			Name:      UnitName(u.ID),
			Team:      u.Team,
			Type:      u.Type,
			Row:       u.Pos.Row,
			Col:       u.Pos.Col,
			Health:    u.Health,
			Damage:    u.Damage,
			Lifetime:  u.Lifetime,
			Worth:     u.Worth,
			Moves:     u.BaseMoves,
			MovesLeft: u.MovesLeft,
			Effects:   liveEffects(u.Effects),
		})
	}
	scene.Tiles = liveTiles(state)
	return scene
}

func UnitName(id int) string {
	return fmt.Sprintf("unit-%d", id)
}

func snapshotUnit(id int, lu *LiveUnit) game.Unit {
	effects := make([]game.UnitEffect, 0, len(lu.Effects))
	for _, e := range lu.Effects {
		if e == nil {
			continue
		}
		effects = append(effects, game.UnitEffect{
			Name:          e.Name,
			Duration:      duration(e.Permanent),
			Remaining:     e.Remaining,
			Layer:         e.Layer,
			CanBeAttacked: !e.Unattackable,
			Thorns:        e.Thorns,
		})
	}
	return game.Unit{
		ID:        id,
		Team:      lu.Team,
		Type:      lu.Type,
		Pos:       lu.Pos(),
		Health:    lu.Health,
		Damage:    lu.Damage,
		Lifetime:  lu.Lifetime,
		Worth:     lu.Worth,
		BaseMoves: lu.Moves,
		MovesLeft: lu.MovesLeft,
		Effects:   effects,
	}
}

func snapshotTileEffect(e *LiveTileEffect) game.TileEffect {
	return game.TileEffect{
		Name:       e.Name,
		Duration:   duration(e.Permanent),
		Remaining:  e.Remaining,
		BlocksTile: e.Blocks,
	}
}

func duration(permanent bool) game.DurationKind {
	if permanent {
		return game.Permanent
	}
	return game.Temporary
}

func liveEffects(effects []game.UnitEffect) []*LiveEffect {
	out := make([]*LiveEffect, 0, len(effects))
	for _, e := range effects {
		out = append(out, &LiveEffect{
			Name:         e.Name,
			Permanent:    e.Duration == game.Permanent,
			Remaining:    e.Remaining,
			Unattackable: !e.CanBeAttacked,
			Thorns:       e.Thorns,
			Layer:        e.Layer,
		})
	}
	return out
}

func liveTiles(state *game.GameState) []*LiveTile {
	var tiles []*LiveTile
	for row := 0; row < state.Rows; row++ {
		for col := 0; col < state.Cols; col++ {
			effects := state.TileEffects(game.Position{Row: row, Col: col})
			if len(effects) == 0 {
				continue
			}
			tile := &LiveTile{Row: row, Col: col}
			for _, e := range effects {
				tile.Effects = append(tile.Effects, &LiveTileEffect{
					Name:      e.Name,
					Permanent: e.Duration == game.Permanent,
					Remaining: e.Remaining,
					Blocks:    e.BlocksTile,
				})
			}
			tiles = append(tiles, tile)
		}
	}
	return tiles
}

// BeginPhase applies a phase start to the live scene, with the same rules the
// search uses on snapshots.
func (s *Scene) BeginPhase(team game.Team) error {
	state, byID, err := BuildState(s)
	if err != nil {
		return err
	}
	next := game.BeginPhase(state, team)
	for _, u := range next.Units() {
		lu := byID[u.ID]
		lu.MovesLeft = u.MovesLeft
		lu.Effects = liveEffects(u.Effects)
	}
	if team == game.Boss {
		s.Tiles = liveTiles(next)
	}
	return nil
}
