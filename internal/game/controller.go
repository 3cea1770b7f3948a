package game

import (
	"raycaster/internal/collision"
	"raycaster/internal/config"
	"raycaster/internal/mathutil"
)

// maxDeltaScale caps how many ticks one slow frame may advance. Config
// validation keeps move_speed times this cap under one cell.
const maxDeltaScale = config.MaxDeltaScale

// InputState is the set of held controls for one frame
type InputState struct {
	TurnLeft  bool
	TurnRight bool
	Forward   bool
	Backward  bool
	Quit      bool
}

// Controller applies one frame of input to a PlayerState
type Controller struct {
	mover         *collision.Mover
	rotationSpeed float64
	turnLeft      mathutil.Rotation
	turnRight     mathutil.Rotation
}

// NewController creates a controller that turns rotationSpeed radians and
// moves with mover per tick
func NewController(mover *collision.Mover, rotationSpeed float64) *Controller {
	return &Controller{
		mover:         mover,
		rotationSpeed: rotationSpeed,
		turnLeft:      mathutil.NewRotation(-rotationSpeed),
		turnRight:     mathutil.NewRotation(rotationSpeed),
	}
}

// Mover returns the collision-checked mover
func (c *Controller) Mover() *collision.Mover {
	return c.mover
}

// Step advances state by one frame. Controls apply in a fixed order: turn
// left, turn right, forward, backward. dt is the frame length in ticks; 1
// keeps the classic frame-coupled speed.
func (c *Controller) Step(state PlayerState, in InputState, dt float64) PlayerState {
	if dt <= 0 {
		return state
	}
	if dt > maxDeltaScale {
		dt = maxDeltaScale
	}

	if in.TurnLeft {
		state = c.turn(state, c.turnLeft, -c.rotationSpeed, dt)
	}
	if in.TurnRight {
		state = c.turn(state, c.turnRight, c.rotationSpeed, dt)
	}
	if in.Forward {
		state.Position = c.mover.MoveScaled(state.Position, state.Orientation, 1, dt)
	}
	if in.Backward {
		state.Position = c.mover.MoveScaled(state.Position, state.Orientation, -1, dt)
	}
	return state
}

// turn uses the precomputed matrix for a whole tick and rotates by the
// scaled angle otherwise
func (c *Controller) turn(state PlayerState, fixed mathutil.Rotation, angle, dt float64) PlayerState {
	if dt == 1 {
		return state.Turn(fixed)
	}
	return state.TurnBy(angle * dt)
}
