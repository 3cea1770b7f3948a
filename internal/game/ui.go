package game

import (
	"fmt"
	"image/color"

	"raycaster/internal/raycast"
	"raycaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	minimapTileSize = 6
	minimapMargin   = 10
)

var (
	minimapBackground = color.RGBA{0, 0, 0, 160}
	minimapFloor      = color.RGBA{90, 90, 90, 160}
	minimapPlayer     = color.RGBA{255, 220, 0, 255}
)

// UISystem draws the HUD over the first-person view
type UISystem struct {
	game     *RaycastGame
	fpsColor color.RGBA
}

// NewUISystem creates a new UI system
func NewUISystem(game *RaycastGame) *UISystem {
	return &UISystem{
		game:     game,
		fpsColor: rgb(game.config.Graphics.Colors.FPS),
	}
}

// Draw draws every enabled HUD element
func (ui *UISystem) Draw(screen *ebiten.Image) {
	if ui.game.showMinimap {
		ui.drawMinimap(screen)
	}
	if ui.game.showFPS {
		ui.drawFPSCounter(screen)
	}
}

type coloredTextSegment struct {
	text  string
	color color.Color
}

func drawColoredTextSegments(screen *ebiten.Image, x, y int, segments []coloredTextSegment) {
	face := basicfont.Face7x13
	baseline := y + face.Ascent
	curX := x
	for _, seg := range segments {
		ebitext.Draw(screen, seg.text, face, curX, baseline, seg.color)
		curX += font.MeasureString(face, seg.text).Round()
	}
}

// drawFPSCounter draws the frame rate in the top-left corner
func (ui *UISystem) drawFPSCounter(screen *ebiten.Image) {
	drawColoredTextSegments(screen, 10, 0, []coloredTextSegment{
		{text: fmt.Sprintf("%d", int(ebiten.ActualFPS())), color: ui.fpsColor},
	})
}

// drawMinimap draws the grid from above in the top-right corner with the
// player as a dot and a line along the view direction
func (ui *UISystem) drawMinimap(screen *ebiten.Image) {
	grid := ui.game.session.Grid()
	tiles := ui.game.session.Tiles()

	mapW := float32(grid.Width * minimapTileSize)
	mapH := float32(grid.Height * minimapTileSize)
	originX := float32(ui.game.config.GetScreenWidth()) - mapW - minimapMargin
	originY := float32(minimapMargin)

	vector.DrawFilledRect(screen, originX-2, originY-2, mapW+4, mapH+4, minimapBackground, false)

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			tileColor := minimapFloor
			if code := grid.TileAt(x, y); code.IsSolid() {
				if c, err := tiles.WallColor(code); err == nil {
					tileColor = c
				}
			}
			vector.DrawFilledRect(screen,
				originX+float32(x*minimapTileSize), originY+float32(y*minimapTileSize),
				minimapTileSize, minimapTileSize, tileColor, false)
		}
	}

	state := ui.game.session.State()
	px := originX + float32(state.Position.X*minimapTileSize)
	py := originY + float32(state.Position.Y*minimapTileSize)
	dx, dy := state.GetViewDirection()
	vector.StrokeLine(screen, px, py,
		px+float32(dx*2*minimapTileSize), py+float32(dy*2*minimapTileSize),
		1, minimapPlayer, true)
	vector.DrawFilledCircle(screen, px, py, minimapTileSize/2, minimapPlayer, true)

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("(%.1f, %.1f) %s", state.Position.X, state.Position.Y, ui.game.facingTileName()),
		int(originX), int(originY+mapH)+4)
}

func (g *RaycastGame) facingTileName() string {
	return facingTileName(g.hits, g.session.Tiles())
}

// facingTileName names the material hit by the centre column of a frame
func facingTileName(hits []raycast.Hit, tiles *world.TileManager) string {
	if len(hits) == 0 {
		return "none"
	}
	hit := hits[len(hits)/2]
	if !hit.Tile.IsSolid() {
		return "none"
	}
	if data := tiles.GetTileData(hit.Tile); data != nil && data.Name != "" {
		return data.Name
	}
	return fmt.Sprintf("tile %d", hit.Tile)
}
