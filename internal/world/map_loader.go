package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

var ErrNoMapData = errors.New("map file contains no valid map data")

// MapLoader handles loading grids from text map files.
//
// Format: one row per line, one character per cell. Digits 0-9 are tile
// codes, '.' is empty floor, '+' is empty floor marking the player start.
// Spaces between cells are ignored. Blank lines and lines starting with '#'
// are skipped.
type MapLoader struct {
	verbose bool
}

// MapData contains the loaded map information
type MapData struct {
	Width  int
	Height int
	Tiles  [][]TileCode
	StartX int // -1 when the map has no '+' marker
	StartY int
}

// NewMapLoader creates a new map loader
func NewMapLoader() *MapLoader {
	return &MapLoader{verbose: true}
}

// LoadMap loads a map from the specified file path
func (ml *MapLoader) LoadMap(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	mapData, err := ml.ReadMap(file)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", mapPath, err)
	}

	if ml.verbose {
		log.Printf("[MapLoader] Loaded %s (%dx%d)", mapPath, mapData.Width, mapData.Height)
	}
	return mapData, nil
}

// ReadMap parses map text from r
func (ml *MapLoader) ReadMap(r io.Reader) (*MapData, error) {
	var lines []string
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		// Skip empty lines and comment lines (lines starting with #)
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, strings.Join(strings.Fields(line), ""))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}

	if len(lines) == 0 {
		return nil, ErrNoMapData
	}

	height := len(lines)
	width := len(lines[0])

	mapData := &MapData{
		Width:  width,
		Height: height,
		Tiles:  make([][]TileCode, height),
		StartX: -1,
		StartY: -1,
	}

	for y, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("%w: line %d has width %d, expected %d", ErrRaggedGrid, y+1, len(line), width)
		}
		mapData.Tiles[y] = make([]TileCode, width)
		for x, char := range line {
			tile, isStart, err := parseMapCharacter(char)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", y+1, x+1, err)
			}
			mapData.Tiles[y][x] = tile
			if isStart {
				mapData.StartX = x
				mapData.StartY = y
			}
		}
	}

	return mapData, nil
}

// parseMapCharacter converts a map character to a tile code
func parseMapCharacter(char rune) (TileCode, bool, error) {
	switch {
	case char == '+':
		return TileEmpty, true, nil
	case char == '.':
		return TileEmpty, false, nil
	case char >= '0' && char <= '9':
		return TileCode(char - '0'), false, nil
	default:
		return TileEmpty, false, fmt.Errorf("unknown map character %q", char)
	}
}

// Grid validates the loaded tiles and returns them as a Grid
func (md *MapData) Grid() (*Grid, error) {
	return NewGrid(md.Tiles)
}

// HasStart reports whether the map marks a starting cell
func (md *MapData) HasStart() bool {
	return md.StartX >= 0 && md.StartY >= 0
}
