// Package terminal presents a Session in a text terminal through tcell.
// Every terminal column is one ray. Cells are about twice as tall as they
// are wide, so walls are projected at cellAspect rows per cell and sampled
// at each cell's centre.
package terminal

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"raycaster/internal/game"
	"raycaster/internal/mathutil"
	"raycaster/internal/raycast"
	"raycaster/internal/scene"

	"github.com/gdamore/tcell/v2"
)

const (
	wallRune   = '█'
	cellAspect = 2
)

// Terminal draws frames on a tcell screen and turns key events into input.
// A terminal reports key presses but not releases, so each press counts as
// the key held for exactly one tick.
type Terminal struct {
	screen  tcell.Screen
	session *game.Session
	tick    time.Duration

	ceiling tcell.Style
	floor   tcell.Style
	hud     tcell.Style

	// Rebuilt whenever the screen size changes
	width, height int
	caster        *raycast.Caster
	compositor    *scene.Compositor
	hits          []raycast.Hit
	segments      []scene.Segment

	pending game.InputState
	showFPS bool
	fps     float64
	last    time.Time
}

// New creates a terminal front end ticking at the configured rate
func New(screen tcell.Screen, session *game.Session) *Terminal {
	cfg := session.Config()
	colors := cfg.Graphics.Colors
	return &Terminal{
		screen:  screen,
		session: session,
		tick:    time.Second / time.Duration(cfg.Display.TPS),
		ceiling: tcell.StyleDefault.Background(rgbColor(colors.Ceiling)),
		floor:   tcell.StyleDefault.Background(rgbColor(colors.Floor)),
		hud:     tcell.StyleDefault.Foreground(rgbColor(colors.FPS)).Background(rgbColor(colors.Ceiling)),
		showFPS: true,
	}
}

// Run processes events and draws at the tick rate until the user quits or
// ctx is cancelled. The caller owns the screen's Init and Fini.
func (t *Terminal) Run(ctx context.Context) error {
	t.screen.HideCursor()

	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			events <- ev
		}
	}()

	if err := t.Draw(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if t.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if err := t.Tick(); err != nil {
				return err
			}
		}
	}
}

// HandleEvent records the input an event carries. It returns true when the
// user asked to quit.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyLeft:
			t.pending.TurnLeft = true
		case tcell.KeyRight:
			t.pending.TurnRight = true
		case tcell.KeyUp:
			t.pending.Forward = true
		case tcell.KeyDown:
			t.pending.Backward = true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case 'a':
				t.pending.TurnLeft = true
			case 'd':
				t.pending.TurnRight = true
			case 'w':
				t.pending.Forward = true
			case 's':
				t.pending.Backward = true
			case '/':
				t.showFPS = !t.showFPS
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return false
}

// Tick applies the input gathered since the previous tick and redraws
func (t *Terminal) Tick() error {
	t.session.Advance(t.pending, 1)
	t.pending = game.InputState{}
	return t.Draw()
}

// Draw renders the current player state
func (t *Terminal) Draw() error {
	w, h := t.screen.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	if err := t.resize(w, h); err != nil {
		return err
	}

	state := t.session.State()
	t.caster.CastFrame(state.Position, state.Orientation, state.Plane, t.hits)
	t.segments = t.compositor.Frame(t.hits, t.caster.Stride(), t.segments)

	for _, seg := range t.segments {
		wall := tcell.StyleDefault.Foreground(rgbaColor(seg.Color)).Background(rgbaColor(seg.Color))
		for y := 0; y < t.height; y++ {
			row := float64(y*cellAspect) + cellAspect/2.0
			switch {
			case row < seg.Start:
				t.screen.SetContent(seg.X, y, ' ', nil, t.ceiling)
			case row <= seg.End:
				t.screen.SetContent(seg.X, y, wallRune, nil, wall)
			default:
				t.screen.SetContent(seg.X, y, ' ', nil, t.floor)
			}
		}
	}

	t.measureFPS()
	if t.showFPS {
		t.drawText(1, 0, fmt.Sprintf("%d", int(t.fps)), t.hud)
	}

	t.screen.Show()
	return nil
}

// resize rebuilds the caster and buffers when the screen size changes
func (t *Terminal) resize(w, h int) error {
	if w == t.width && h == t.height && t.caster != nil {
		return nil
	}

	caster, err := raycast.NewCaster(t.session.Grid(), w, 1)
	if err != nil {
		return fmt.Errorf("terminal %dx%d: %w", w, h, err)
	}
	compositor := scene.NewCompositor(h*cellAspect, t.session.Tiles())
	compositor.SetSideShading(t.session.Config().Graphics.SideShading)

	t.width, t.height = w, h
	t.caster = caster
	t.compositor = compositor
	t.hits = make([]raycast.Hit, caster.Columns())
	t.segments = make([]scene.Segment, 0, caster.Columns())
	return nil
}

func (t *Terminal) measureFPS() {
	now := time.Now()
	if !t.last.IsZero() {
		if elapsed := now.Sub(t.last).Seconds(); elapsed > 0 {
			t.fps = 1 / elapsed
		}
	}
	t.last = now
}

func (t *Terminal) drawText(x, y int, text string, style tcell.Style) {
	runes := []rune(text)
	n := mathutil.IntMin(len(runes), t.width-x)
	for i := 0; i < n; i++ {
		t.screen.SetContent(x+i, y, runes[i], nil, style)
	}
}

func rgbColor(c [3]int) tcell.Color {
	return tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2]))
}

func rgbaColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
