package game

import (
	"raycaster/internal/config"
	"raycaster/internal/mathutil"
)

// PlayerState is the viewer: where it stands, where it looks and the camera
// plane that sets the field of view. Orientation is never renormalised.
type PlayerState struct {
	Position    mathutil.Vec2
	Orientation mathutil.Vec2
	Plane       mathutil.Vec2
}

// NewPlayerState returns the configured starting state
func NewPlayerState(cfg *config.Config) PlayerState {
	return PlayerState{
		Position:    mathutil.V(cfg.Camera.StartX, cfg.Camera.StartY),
		Orientation: mathutil.V(cfg.Camera.DirX, cfg.Camera.DirY),
		Plane:       mathutil.V(cfg.Camera.PlaneX, cfg.Camera.PlaneY),
	}
}

// Turn rotates orientation and plane by the same matrix
func (p PlayerState) Turn(r mathutil.Rotation) PlayerState {
	p.Orientation = r.Apply(p.Orientation)
	p.Plane = r.Apply(p.Plane)
	return p
}

// TurnBy rotates orientation and plane by angle radians
func (p PlayerState) TurnBy(angle float64) PlayerState {
	p.Orientation = mathutil.Rotate(p.Orientation, angle)
	p.Plane = mathutil.Rotate(p.Plane, angle)
	return p
}

// GetPosition returns the player's current position
func (p PlayerState) GetPosition() (float64, float64) {
	return p.Position.X, p.Position.Y
}

// GetViewDirection returns the current view direction
func (p PlayerState) GetViewDirection() (float64, float64) {
	return p.Orientation.X, p.Orientation.Y
}
