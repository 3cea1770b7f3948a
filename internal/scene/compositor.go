// Package scene turns ray hits into vertical wall segments for a renderer.
package scene

import (
	"image/color"
	"math"

	"raycaster/internal/mathutil"
	"raycaster/internal/raycast"
	"raycaster/internal/world"
)

// projectionEpsilon keeps the projection finite for a wall at the viewer
const projectionEpsilon = 1e-7

// Palette resolves tile codes to wall colours
type Palette interface {
	WallColor(code world.TileCode) (color.RGBA, error)
}

// Segment is one vertical wall slice. Start and End lie in [0, Height) and
// Start <= End.
type Segment struct {
	X     int     // Screen column of the slice's left edge
	Width int     // Pixels covered, the caster's column stride
	Start float64 // Top of the slice
	End   float64 // Bottom of the slice
	Color color.RGBA
	Side  raycast.Side
}

// Compositor projects hits onto a screen of fixed height
type Compositor struct {
	height      int
	palette     Palette
	sideShading bool
}

// NewCompositor creates a compositor for a screen height pixels tall
func NewCompositor(height int, palette Palette) *Compositor {
	return &Compositor{height: height, palette: palette}
}

// SetSideShading darkens walls hit on a Y grid line. Off by default: every
// face of a material has the same flat colour.
func (c *Compositor) SetSideShading(enabled bool) {
	c.sideShading = enabled
}

// Height returns the screen height segments are clamped to
func (c *Compositor) Height() int {
	return c.height
}

// LineHeight returns the projected wall height for a perpendicular distance
func (c *Compositor) LineHeight(distance float64) int {
	return mathutil.IntAbs(int(float64(c.height) / (distance + projectionEpsilon)))
}

// Segment projects one hit sampled at screen column screenX
func (c *Compositor) Segment(screenX, width int, hit raycast.Hit) Segment {
	lineHeight := float64(c.LineHeight(hit.Distance))
	half := float64(c.height) / 2

	start := math.Max(half-lineHeight/2, 0)
	end := half + lineHeight/2
	if end >= float64(c.height) {
		end = float64(c.height - 1)
	}

	wallColor, err := c.palette.WallColor(hit.Tile)
	if err != nil {
		// The caster only stops on solid tiles with validated colours
		panic("scene: " + err.Error())
	}
	if c.sideShading && hit.Side == raycast.SideY {
		wallColor.R /= 2
		wallColor.G /= 2
		wallColor.B /= 2
	}

	return Segment{
		X:     screenX,
		Width: width,
		Start: start,
		End:   end,
		Color: wallColor,
		Side:  hit.Side,
	}
}

// Frame projects a frame of hits cast stride pixels apart, reusing out's
// backing array when it is large enough.
func (c *Compositor) Frame(hits []raycast.Hit, stride int, out []Segment) []Segment {
	out = out[:0]
	for i, hit := range hits {
		out = append(out, c.Segment(i*stride, stride, hit))
	}
	return out
}
