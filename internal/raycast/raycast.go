// Package raycast walks rays through a tile grid with the Digital
// Differential Analyzer and reports the first solid cell each ray meets.
package raycast

import (
	"errors"
	"fmt"
	"math"

	"raycaster/internal/mathutil"
	"raycaster/internal/world"
)

const (
	// RayEpsilon replaces a zero ray component so the delta distances never
	// divide by zero. It is far below one cell, so the hit does not change.
	RayEpsilon = 1e-15
	// DistanceEpsilon is the floor applied to the perpendicular distance
	// before it is used as a divisor.
	DistanceEpsilon = 1e-7
)

var (
	ErrNilGrid      = errors.New("raycast: grid is nil")
	ErrInvalidWidth = errors.New("raycast: screen width must be positive")
	ErrInvalidStep  = errors.New("raycast: column stride must be positive")
)

// Side tells which grid line the ray crossed last
type Side uint8

const (
	SideX Side = iota // Stepped along X last: hit an east or west face
	SideY             // Stepped along Y last: hit a north or south face
)

func (s Side) String() string {
	if s == SideX {
		return "x"
	}
	return "y"
}

// Hit contains the result of a DDA raycast
type Hit struct {
	CellX, CellY int
	Tile         world.TileCode
	Side         Side
	Distance     float64 // Perpendicular to the camera plane, never below DistanceEpsilon
	Steps        int     // Grid cells visited before the hit
}

// Caster casts one ray per sampled screen column. It only reads the grid
// and keeps no per-call state, so columns may be cast concurrently.
type Caster struct {
	grid        *world.Grid
	screenWidth int
	stride      int
	maxSteps    int
}

// NewCaster creates a caster for a screen screenWidth pixels wide that
// samples every stride-th column.
func NewCaster(grid *world.Grid, screenWidth, stride int) (*Caster, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	if screenWidth <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, screenWidth)
	}
	if stride <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStep, stride)
	}
	return &Caster{
		grid:        grid,
		screenWidth: screenWidth,
		stride:      stride,
		maxSteps:    grid.Width + grid.Height,
	}, nil
}

// Grid returns the grid the caster walks
func (c *Caster) Grid() *world.Grid {
	return c.grid
}

// Columns returns how many rays one frame casts
func (c *Caster) Columns() int {
	return (c.screenWidth + c.stride - 1) / c.stride
}

// Stride returns the pixel distance between sampled columns
func (c *Caster) Stride() int {
	return c.stride
}

// ScreenX returns the screen column sampled by ray index i
func (c *Caster) ScreenX(i int) int {
	return i * c.stride
}

// CameraX maps a screen column onto [-1, 1)
func (c *Caster) CameraX(screenX int) float64 {
	return 2*float64(screenX)/float64(c.screenWidth) - 1
}

// CastColumn casts the ray for sampled column i
func (c *Caster) CastColumn(pos, dir, plane mathutil.Vec2, i int) Hit {
	cameraX := c.CameraX(c.ScreenX(i))
	return c.Cast(pos, dir.Add(plane.Scale(cameraX)))
}

// Cast walks a ray from pos along rayDir until it meets a solid cell
func (c *Caster) Cast(pos, rayDir mathutil.Vec2) Hit {
	if rayDir.Y == 0 {
		rayDir.Y = RayEpsilon
	}
	if rayDir.X == 0 {
		rayDir.X = RayEpsilon
	}

	cellX := int(math.Floor(pos.X))
	cellY := int(math.Floor(pos.Y))

	// Ray length between two successive grid lines on each axis
	deltaX := math.Sqrt(1 + (rayDir.Y*rayDir.Y)/(rayDir.X*rayDir.X))
	deltaY := math.Sqrt(1 + (rayDir.X*rayDir.X)/(rayDir.Y*rayDir.Y))

	// Step direction and ray length to the first grid line on each axis
	var stepX, stepY int
	var sideDistX, sideDistY float64
	if rayDir.X < 0 {
		stepX = -1
		sideDistX = (pos.X - float64(cellX)) * deltaX
	} else {
		stepX = 1
		sideDistX = (float64(cellX) + 1 - pos.X) * deltaX
	}
	if rayDir.Y < 0 {
		stepY = -1
		sideDistY = (pos.Y - float64(cellY)) * deltaY
	} else {
		stepY = 1
		sideDistY = (float64(cellY) + 1 - pos.Y) * deltaY
	}

	side := SideX
	steps := 0
	for {
		if sideDistX < sideDistY {
			sideDistX += deltaX
			cellX += stepX
			side = SideX
		} else {
			sideDistY += deltaY
			cellY += stepY
			side = SideY
		}
		steps++

		if tile := c.grid.TileAt(cellX, cellY); tile.IsSolid() {
			return Hit{
				CellX:    cellX,
				CellY:    cellY,
				Tile:     tile,
				Side:     side,
				Distance: perpDistance(pos, rayDir, cellX, cellY, stepX, stepY, side),
				Steps:    steps,
			}
		}

		if steps > c.maxSteps {
			// Unreachable for a grid built by world.NewGrid
			panic(fmt.Sprintf("raycast: no wall after %d steps from (%.3f, %.3f); grid border is open", steps, pos.X, pos.Y))
		}
	}
}

// perpDistance projects the hit onto the camera direction, which removes
// the fish-eye bulge a Euclidean ray length would produce.
func perpDistance(pos, rayDir mathutil.Vec2, cellX, cellY, stepX, stepY int, side Side) float64 {
	var d float64
	if side == SideX {
		d = math.Abs((float64(cellX) - pos.X + float64(1-stepX)/2) / rayDir.X)
	} else {
		d = math.Abs((float64(cellY) - pos.Y + float64(1-stepY)/2) / rayDir.Y)
	}
	if d < DistanceEpsilon || math.IsNaN(d) {
		d = DistanceEpsilon
	}
	return d
}

// CastFrame casts every column into hits, which must hold Columns() entries
func (c *Caster) CastFrame(pos, dir, plane mathutil.Vec2, hits []Hit) {
	for i := range hits {
		hits[i] = c.CastColumn(pos, dir, plane, i)
	}
}
