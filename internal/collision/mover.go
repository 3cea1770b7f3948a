package collision

import (
	"math"

	"raycaster/internal/mathutil"
)

// TileChecker interface for checking if tiles block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// Mover advances a position along a direction, gating each axis on the grid.
//
// The X axis is tried first against the current Y row, then the Y axis
// against the (possibly already updated) X column. An axis whose destination
// cell is solid keeps its old value, so a diagonal push into a wall slides
// along it. There is no bounce and no partial step.
type Mover struct {
	tileChecker TileChecker
	speed       float64
}

// NewMover creates a mover that travels speed cells per call
func NewMover(tileChecker TileChecker, speed float64) *Mover {
	return &Mover{
		tileChecker: tileChecker,
		speed:       speed,
	}
}

// Move returns pos advanced by sign*dir*speed with per-axis collision
func (m *Mover) Move(pos, dir mathutil.Vec2, sign float64) mathutil.Vec2 {
	return m.MoveScaled(pos, dir, sign, 1)
}

// MoveScaled is Move with the step length multiplied by scale
func (m *Mover) MoveScaled(pos, dir mathutil.Vec2, sign, scale float64) mathutil.Vec2 {
	step := sign * m.speed * scale

	nextX := pos.X + dir.X*step
	if !m.tileChecker.IsTileBlocking(cell(nextX), cell(pos.Y)) {
		pos.X = nextX
	}

	nextY := pos.Y + dir.Y*step
	if !m.tileChecker.IsTileBlocking(cell(pos.X), cell(nextY)) {
		pos.Y = nextY
	}

	return pos
}

// Forward moves along dir
func (m *Mover) Forward(pos, dir mathutil.Vec2) mathutil.Vec2 {
	return m.Move(pos, dir, 1)
}

// Backward moves against dir
func (m *Mover) Backward(pos, dir mathutil.Vec2) mathutil.Vec2 {
	return m.Move(pos, dir, -1)
}

// CanOccupy reports whether pos lies in a walkable cell
func (m *Mover) CanOccupy(pos mathutil.Vec2) bool {
	return !m.tileChecker.IsTileBlocking(cell(pos.X), cell(pos.Y))
}

func cell(v float64) int {
	return int(math.Floor(v))
}
