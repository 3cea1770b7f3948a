package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// GameLoop manages the main update and render cycle
type GameLoop struct {
	game         *RaycastGame
	inputHandler *InputHandler
	ui           *UISystem
	renderer     *Renderer

	lastUpdate         time.Time
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(game *RaycastGame) *GameLoop {
	return &GameLoop{
		game:         game,
		inputHandler: NewInputHandler(game),
		ui:           NewUISystem(game),
		renderer:     NewRenderer(game),
	}
}

// Update polls input and advances the player for one tick
func (gl *GameLoop) Update() error {
	start := time.Now()
	defer func() { gl.lastUpdateDuration = time.Since(start) }()

	in := gl.inputHandler.HandleInput()
	if in.Quit {
		return ebiten.Termination
	}

	gl.game.session.Advance(in, gl.deltaTicks(start))

	gl.maybeLogPerfDrop()
	return nil
}

// deltaTicks is the elapsed time since the previous Update in ticks, or 1
// when delta-time scaling is off
func (gl *GameLoop) deltaTicks(now time.Time) float64 {
	defer func() { gl.lastUpdate = now }()

	cfg := gl.game.config
	if !cfg.Movement.DeltaTimeScaling || gl.lastUpdate.IsZero() {
		return 1
	}
	return now.Sub(gl.lastUpdate).Seconds() * float64(cfg.Display.TPS)
}

// Draw handles all rendering for one frame
func (gl *GameLoop) Draw(screen *ebiten.Image) {
	frameTimer := gl.game.threading.PerformanceMonitor.StartFrame()
	defer frameTimer.EndFrame()

	start := time.Now()
	defer func() { gl.lastDrawDuration = time.Since(start) }()

	// Render the 3D first-person view
	gl.renderer.RenderFirstPersonView(screen)

	// Draw UI elements
	gl.ui.Draw(screen)
}

// Layout returns the screen dimensions
func (gl *GameLoop) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return gl.game.config.GetScreenWidth(), gl.game.config.GetScreenHeight()
}
