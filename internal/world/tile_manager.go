package world

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"raycaster/internal/config"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyTileColor = errors.New("tile code 0 is empty floor and has no wall color")
	ErrUnknownTile    = errors.New("tile code has no wall color")
)

// TileManager maps tile codes to wall materials
type TileManager struct {
	tileData map[TileCode]*config.TileData
	colors   [256]color.RGBA
	known    [256]bool
}

// NewTileManager creates an empty tile manager
func NewTileManager() *TileManager {
	return &TileManager{
		tileData: make(map[TileCode]*config.TileData),
	}
}

// DefaultTileManager returns the palette of the reference grid
func DefaultTileManager() *TileManager {
	tm := NewTileManager()
	for code, data := range map[TileCode]config.TileData{
		TileRedWall:   {Name: "red_wall", WallColor: [3]int{150, 0, 0}},
		TileGreenWall: {Name: "green_wall", WallColor: [3]int{0, 150, 0}},
		TileBlueWall:  {Name: "blue_wall", WallColor: [3]int{0, 0, 150}},
	} {
		if err := tm.SetTile(code, data); err != nil {
			panic("default palette is invalid: " + err.Error())
		}
	}
	return tm
}

// LoadTileConfig loads tile configuration from a YAML file
func (tm *TileManager) LoadTileConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read tile config file: %w", err)
	}

	var tileConfig config.TileConfig
	if err := yaml.Unmarshal(data, &tileConfig); err != nil {
		return fmt.Errorf("failed to parse tile config: %w", err)
	}

	for code, tileData := range tileConfig.TileData {
		if code < 0 || code > 255 {
			return fmt.Errorf("tile config %s: code %d out of range", filename, code)
		}
		if err := tm.SetTile(TileCode(code), tileData); err != nil {
			return fmt.Errorf("tile config %s: %w", filename, err)
		}
	}

	return nil
}

// SetTile registers or replaces the material for a solid tile code
func (tm *TileManager) SetTile(code TileCode, data config.TileData) error {
	if !code.IsSolid() {
		return ErrEmptyTileColor
	}
	if err := config.ValidateRGB(data.WallColor); err != nil {
		return fmt.Errorf("tile %d: %w", code, err)
	}
	// Make a copy to avoid pointer issues
	tileCopy := data
	tm.tileData[code] = &tileCopy
	tm.colors[code] = color.RGBA{
		R: uint8(data.WallColor[0]),
		G: uint8(data.WallColor[1]),
		B: uint8(data.WallColor[2]),
		A: 255,
	}
	tm.known[code] = true
	return nil
}

// WallColor returns the flat wall colour for a tile code
func (tm *TileManager) WallColor(code TileCode) (color.RGBA, error) {
	if !code.IsSolid() {
		return color.RGBA{}, ErrEmptyTileColor
	}
	if !tm.known[code] {
		return color.RGBA{}, fmt.Errorf("%w: %d", ErrUnknownTile, code)
	}
	return tm.colors[code], nil
}

// GetTileData returns the material for a code, or nil
func (tm *TileManager) GetTileData(code TileCode) *config.TileData {
	return tm.tileData[code]
}

// Covers checks that every solid code in the grid has a colour
func (tm *TileManager) Covers(g *Grid) error {
	for _, code := range g.Codes() {
		if !tm.known[code] {
			return fmt.Errorf("%w: %d", ErrUnknownTile, code)
		}
	}
	return nil
}
