package world

import (
	"errors"
	"fmt"
)

var (
	ErrGridTooSmall = errors.New("grid must be at least 3x3")
	ErrRaggedGrid   = errors.New("grid rows have different widths")
	ErrOpenBorder   = errors.New("grid border must be fully solid")
)

// Grid is the immutable tile map the renderer walks. Cells are addressed as
// (x, y) where y selects the row and x the column, like Tiles[y][x].
//
// Every border cell is solid. The ray caster and the mover step one cell at
// a time and stop on the first solid cell, so they never index past the
// border of a grid built by NewGrid.
type Grid struct {
	Width  int
	Height int
	tiles  [][]TileCode
}

// NewGrid copies rows into a Grid, rejecting grids that are too small, not
// rectangular, or whose border has an empty cell.
func NewGrid(rows [][]TileCode) (*Grid, error) {
	height := len(rows)
	if height < 3 {
		return nil, fmt.Errorf("%w: height %d", ErrGridTooSmall, height)
	}
	width := len(rows[0])
	if width < 3 {
		return nil, fmt.Errorf("%w: width %d", ErrGridTooSmall, width)
	}

	tiles := make([][]TileCode, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedGrid, y, len(row), width)
		}
		tiles[y] = append([]TileCode(nil), row...)
	}

	for x := 0; x < width; x++ {
		if !tiles[0][x].IsSolid() {
			return nil, fmt.Errorf("%w: empty cell at (%d, %d)", ErrOpenBorder, x, 0)
		}
		if !tiles[height-1][x].IsSolid() {
			return nil, fmt.Errorf("%w: empty cell at (%d, %d)", ErrOpenBorder, x, height-1)
		}
	}
	for y := 0; y < height; y++ {
		if !tiles[y][0].IsSolid() {
			return nil, fmt.Errorf("%w: empty cell at (%d, %d)", ErrOpenBorder, 0, y)
		}
		if !tiles[y][width-1].IsSolid() {
			return nil, fmt.Errorf("%w: empty cell at (%d, %d)", ErrOpenBorder, width-1, y)
		}
	}

	return &Grid{Width: width, Height: height, tiles: tiles}, nil
}

// TileAt returns the tile code at cell (x, y). It does not bounds check;
// callers stay inside by stopping at the solid border.
func (g *Grid) TileAt(x, y int) TileCode {
	return g.tiles[y][x]
}

// Contains reports whether (x, y) lies inside the grid
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// IsTileBlocking checks if a tile blocks movement. Out-of-bounds counts as
// blocking.
func (g *Grid) IsTileBlocking(tileX, tileY int) bool {
	if !g.Contains(tileX, tileY) {
		return true
	}
	return g.tiles[tileY][tileX].IsSolid()
}

// GetWorldBounds returns the grid size in cells
func (g *Grid) GetWorldBounds() (width, height int) {
	return g.Width, g.Height
}

// Codes returns the distinct solid tile codes present in the grid
func (g *Grid) Codes() []TileCode {
	var seen [256]bool
	var codes []TileCode
	for _, row := range g.tiles {
		for _, t := range row {
			if t.IsSolid() && !seen[t] {
				seen[t] = true
				codes = append(codes, t)
			}
		}
	}
	return codes
}
