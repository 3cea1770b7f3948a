package mathutil

import "math"

// Vec2 is a 2D vector in grid units. Values are passed by copy; every
// operation returns a new vector.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rotation is a precomputed 2x2 rotation matrix. Building it once keeps the
// per-frame turn free of trigonometry.
type Rotation struct {
	cos, sin float64
}

// NewRotation returns the rotation matrix for angle radians
// (counter-clockwise in a y-up frame).
func NewRotation(angle float64) Rotation {
	return Rotation{cos: math.Cos(angle), sin: math.Sin(angle)}
}

// Apply multiplies the matrix with v.
func (r Rotation) Apply(v Vec2) Vec2 {
	return Vec2{
		X: r.cos*v.X - r.sin*v.Y,
		Y: r.sin*v.X + r.cos*v.Y,
	}
}

// Rotate applies the standard 2D rotation matrix for angle to v.
func Rotate(v Vec2, angle float64) Vec2 {
	return NewRotation(angle).Apply(v)
}
