package game

import (
	"time"

	"raycaster/internal/config"
	"raycaster/internal/raycast"
	"raycaster/internal/scene"
	"raycaster/internal/threading"
	"raycaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

// RaycastGame is the windowed front end. It implements ebiten.Game.
type RaycastGame struct {
	config  *config.Config
	session *Session

	caster     *raycast.Caster
	compositor *scene.Compositor

	// Frame buffers, reused every Draw
	hits     []raycast.Hit
	segments []scene.Segment

	// HUD toggles
	showFPS     bool
	showMinimap bool

	// Performance debug state
	perfDebugEnabled bool
	perfLowFpsSince  time.Time
	perfLastPerfLog  time.Time

	// Threading components
	threading *threading.ThreadingComponents

	gameLoop *GameLoop
}

// NewRaycastGame wires a session to a window of the configured size
func NewRaycastGame(cfg *config.Config, grid *world.Grid, tiles *world.TileManager) (*RaycastGame, error) {
	session, err := NewSession(cfg, grid, tiles)
	if err != nil {
		return nil, err
	}

	caster, err := raycast.NewCaster(grid, cfg.GetScreenWidth(), cfg.GetColumnStride())
	if err != nil {
		return nil, err
	}

	compositor := scene.NewCompositor(cfg.GetScreenHeight(), tiles)
	compositor.SetSideShading(cfg.Graphics.SideShading)

	game := &RaycastGame{
		config:           cfg,
		session:          session,
		caster:           caster,
		compositor:       compositor,
		hits:             make([]raycast.Hit, caster.Columns()),
		segments:         make([]scene.Segment, 0, caster.Columns()),
		showFPS:          true, // FPS counter starts visible
		perfDebugEnabled: cfg.Debug.PerfLog,

		// Threading components
		threading: threading.NewThreadingComponents(cfg),
	}

	game.gameLoop = NewGameLoop(game)

	return game, nil
}

func (g *RaycastGame) Update() error {
	return g.gameLoop.Update()
}

func (g *RaycastGame) Draw(screen *ebiten.Image) {
	g.gameLoop.Draw(screen)
}

func (g *RaycastGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.gameLoop.Layout(outsideWidth, outsideHeight)
}

// Session returns the player session the game presents
func (g *RaycastGame) Session() *Session {
	return g.session
}

// Shutdown stops background workers. Call after ebiten.RunGame returns.
func (g *RaycastGame) Shutdown() {
	g.threading.Shutdown()
}
