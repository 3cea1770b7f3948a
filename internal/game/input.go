package game

import (
	"raycaster/internal/game/keytracker"

	"github.com/hajimehoshi/ebiten/v2"
)

// InputHandler handles all user input for the game
type InputHandler struct {
	game            *RaycastGame
	slashKeyTracker keytracker.KeyStateTracker
	tabKeyTracker   keytracker.KeyStateTracker
}

// NewInputHandler creates a new input handler
func NewInputHandler(game *RaycastGame) *InputHandler {
	return &InputHandler{game: game}
}

// HandleInput polls the keyboard and returns the movement controls held
// this frame. HUD toggles are applied directly.
func (ih *InputHandler) HandleInput() InputState {
	ih.handleUIInput()
	return ih.handleMovementInput()
}

// handleMovementInput processes movement and camera controls
func (ih *InputHandler) handleMovementInput() InputState {
	return InputState{
		TurnLeft:  ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		TurnRight: ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Forward:   ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Backward:  ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Quit:      ebiten.IsKeyPressed(ebiten.KeyEscape),
	}
}

func (ih *InputHandler) handleUIInput() {
	// Toggle FPS counter with '/' key (slash)
	if ih.slashKeyTracker.IsKeyJustPressed(ebiten.KeySlash) {
		ih.game.showFPS = !ih.game.showFPS
	}
	if ih.tabKeyTracker.IsKeyJustPressed(ebiten.KeyTab) {
		ih.game.showMinimap = !ih.game.showMinimap
	}
}
