package gamemaster

import (
	"fmt"
	"sync"

	"bossai/game"
)

// Update is one resolved action, as observed by spectators of the scene.
type Update struct {
	Team     game.Team
	Move     game.Move
	Unit     string
	PlayerHP int
}

// LocalEngine owns a live scene and serialises every change to it. Moves are
// checked against the legal moves of a fresh snapshot before they touch the
// scene.
type LocalEngine struct {
	mu       sync.Mutex
	scene    *Scene
	moves    *game.MoveGenerator
	history  []Update
	gameOver bool
}

func NewLocalEngine(scene *Scene, rules game.Rules) *LocalEngine {
	return &LocalEngine{
		scene: scene,
		moves: game.NewMoveGenerator(rules, game.NewValueCalculator(game.DefaultValueWeights()), 0),
	}
}

// Snapshot builds the search state of the current scene.
func (e *LocalEngine) Snapshot() (*game.GameState, map[int]*LiveUnit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return BuildState(e.scene)
}

// Play validates and executes a move chosen on a snapshot taken with byID.
func (e *LocalEngine) Play(team game.Team, byID map[int]*LiveUnit, move game.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gameOver {
		return fmt.Errorf("game is over - no moves allowed")
	}
	if move.IsPass() {
		e.history = append(e.history, Update{Team: team, Move: move, PlayerHP: e.scene.PlayerHP})
		return nil
	}

	unit, ok := byID[move.UnitID]
	if !ok || unit.Team != team || !e.scene.contains(unit) {
		return fmt.Errorf("unit %d: %w", move.UnitID, ErrUnknownUnit)
	}
	if !e.isLegal(team, unit, move) {
		return fmt.Errorf("%s to %s: %w", unit.Name, move.To, ErrIllegalMove)
	}
	if err := Execute(e.scene, byID, move); err != nil {
		return err
	}

	e.history = append(e.history, Update{Team: team, Move: move, Unit: unit.Name, PlayerHP: e.scene.PlayerHP})
	e.gameOver = isGameOver(e.scene)
	return nil
}

// isLegal matches the move against the live unit's legal moves on a fresh
// snapshot, since ids may differ from the caller's build.
func (e *LocalEngine) isLegal(team game.Team, unit *LiveUnit, move game.Move) bool {
	state, _, err := BuildState(e.scene)
	if err != nil {
		return false
	}
	for _, legal := range e.moves.Generate(state, team) {
		u, _ := state.UnitByID(legal.UnitID)
		if u.Pos == unit.Pos() && legal.To == move.To {
			return true
		}
	}
	return false
}

func (e *LocalEngine) BeginPhase(team game.Team) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.BeginPhase(team)
}

func (e *LocalEngine) PlayerHP() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.PlayerHP
}

func (e *LocalEngine) CountUnits(team game.Team) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.CountUnits(team)
}

func (e *LocalEngine) IsGameOver() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameOver || isGameOver(e.scene)
}

// History returns a copy of every update played so far.
func (e *LocalEngine) History() []Update {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Update(nil), e.history...)
}

// isGameOver is true once the player is dead or one side has no units left.
func isGameOver(s *Scene) bool {
	return s.PlayerHP <= 0 || s.CountUnits(game.Boss) == 0 || s.CountUnits(game.Player) == 0
}
