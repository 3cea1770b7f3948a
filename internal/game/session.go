package game

import (
	"errors"
	"fmt"

	"raycaster/internal/collision"
	"raycaster/internal/config"
	"raycaster/internal/world"
)

var (
	ErrStartOutside = errors.New("start position outside the grid")
	ErrStartInWall  = errors.New("start position inside a wall")
)

// Session is one running view of a grid, independent of how frames are
// presented. Both the window and the terminal front ends drive a Session.
type Session struct {
	config     *config.Config
	grid       *world.Grid
	tiles      *world.TileManager
	controller *Controller
	state      PlayerState
}

// NewSession validates that the grid, palette and start position fit together
func NewSession(cfg *config.Config, grid *world.Grid, tiles *world.TileManager) (*Session, error) {
	if err := tiles.Covers(grid); err != nil {
		return nil, err
	}

	state := NewPlayerState(cfg)
	x, y := state.GetPosition()
	if x < 0 || y < 0 || x >= float64(grid.Width) || y >= float64(grid.Height) {
		return nil, fmt.Errorf("%w: (%.2f, %.2f)", ErrStartOutside, x, y)
	}

	mover := collision.NewMover(grid, cfg.GetMoveSpeed())
	if !mover.CanOccupy(state.Position) {
		return nil, fmt.Errorf("%w: (%.2f, %.2f) is tile %d", ErrStartInWall, x, y, grid.TileAt(int(x), int(y)))
	}
	return &Session{
		config:     cfg,
		grid:       grid,
		tiles:      tiles,
		controller: NewController(mover, cfg.GetRotSpeed()),
		state:      state,
	}, nil
}

// Advance applies one frame of input
func (s *Session) Advance(in InputState, dt float64) {
	s.state = s.controller.Step(s.state, in, dt)
}

// State returns a snapshot of the player
func (s *Session) State() PlayerState {
	return s.state
}

func (s *Session) Grid() *world.Grid {
	return s.grid
}

func (s *Session) Tiles() *world.TileManager {
	return s.tiles
}

func (s *Session) Config() *config.Config {
	return s.config
}
