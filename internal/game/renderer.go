package game

import (
	"image/color"

	"raycaster/internal/scene"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Renderer draws the first-person view
type Renderer struct {
	game         *RaycastGame
	ceilingColor color.RGBA
	floorColor   color.RGBA
}

// NewRenderer creates a renderer using the configured background colours
func NewRenderer(game *RaycastGame) *Renderer {
	colors := game.config.Graphics.Colors
	return &Renderer{
		game:         game,
		ceilingColor: rgb(colors.Ceiling),
		floorColor:   rgb(colors.Floor),
	}
}

// RenderFirstPersonView draws background, then one wall slice per column
func (r *Renderer) RenderFirstPersonView(screen *ebiten.Image) {
	r.renderBackground(screen)

	r.castFrame()

	monitor := r.game.threading.PerformanceMonitor
	monitor.ProfiledFunction("compose", func() {
		r.game.segments = r.game.compositor.Frame(r.game.hits, r.game.caster.Stride(), r.game.segments)
	})

	for _, seg := range r.game.segments {
		r.drawSegment(screen, seg)
	}
}

// castFrame fills the hit buffer from a snapshot of the player state
func (r *Renderer) castFrame() {
	state := r.game.session.State()
	caster := r.game.caster

	timer := r.game.threading.PerformanceMonitor.StartRaycast(len(r.game.hits))
	defer timer.EndRaycast()

	if pr := r.game.threading.ParallelRenderer; pr != nil {
		pr.RenderFrame(caster, state.Position, state.Orientation, state.Plane, r.game.hits)
		return
	}
	caster.CastFrame(state.Position, state.Orientation, state.Plane, r.game.hits)
}

// renderBackground fills the upper half with the ceiling and the lower half with the floor
func (r *Renderer) renderBackground(screen *ebiten.Image) {
	w := float32(r.game.config.GetScreenWidth())
	h := float32(r.game.config.GetScreenHeight())
	vector.DrawFilledRect(screen, 0, 0, w, h/2, r.ceilingColor, false)
	vector.DrawFilledRect(screen, 0, h/2, w, h-h/2, r.floorColor, false)
}

// drawSegment strokes a wall slice covering columns [X, X+Width)
func (r *Renderer) drawSegment(screen *ebiten.Image, seg scene.Segment) {
	x := float32(seg.X) + float32(seg.Width)/2
	vector.StrokeLine(screen, x, float32(seg.Start), x, float32(seg.End), float32(seg.Width), seg.Color, false)
}

func rgb(c [3]int) color.RGBA {
	return color.RGBA{uint8(c[0]), uint8(c[1]), uint8(c[2]), 255}
}
