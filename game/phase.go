package game

import "github.com/rs/zerolog/log"

// BeginPhase returns the state at the start of team's phase. Team units age
// their effects and get a fresh move allowance, the other side cannot move.
// Tile effects age once per round, when the boss phase begins.
func BeginPhase(state *GameState, team Team) *GameState {
	units := state.copyUnits()
	for i, u := range units {
		switch {
		case !u.IsAlive():
			log.Warn().Msgf("Dead unit %d found at phase start", u.ID)
			units[i] = u.WithMovesLeft(0)
		case u.Team == team:
			u = u.WithEffects(tickUnitEffects(u.Effects))
			units[i] = u.WithMovesLeft(u.EffectiveMoves())
		default:
			units[i] = u.WithMovesLeft(0)
		}
	}

	tiles := state.tiles
	if team == Boss {
		tiles = make([][]TileEffect, len(state.tiles))
		for cell, effects := range state.tiles {
			tiles[cell] = tickTileEffects(effects)
		}
	}

	return newState(state.Board, state.PlayerHP, units, tiles)
}
