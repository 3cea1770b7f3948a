package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"raycaster/internal/config"
	"raycaster/internal/world"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults, got error %v", err)
	}
	if cfg.GetScreenWidth() != 800 {
		t.Error("Expected the default config to be installed")
	}
}

func TestLoadConfig_InvalidFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("graphics:\n  column_stride: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); !errors.Is(err, config.ErrInvalidStride) {
		t.Errorf("Expected ErrInvalidStride, got %v", err)
	}
}

func TestLoadWorld_RepositoryConfig(t *testing.T) {
	cfg, err := loadConfig("config.yaml")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	grid, tiles, err := loadWorld(cfg)
	if err != nil {
		t.Fatalf("loadWorld failed: %v", err)
	}
	if grid.Width != 20 || grid.Height != 20 {
		t.Errorf("Expected 20x20 grid, got %dx%d", grid.Width, grid.Height)
	}
	if err := tiles.Covers(grid); err != nil {
		t.Errorf("Palette does not cover grid: %v", err)
	}
}

func TestLoadWorld_Defaults(t *testing.T) {
	cfg := config.Default()

	grid, tiles, err := loadWorld(cfg)
	if err != nil {
		t.Fatalf("loadWorld failed: %v", err)
	}
	if grid.TileAt(9, 7) != world.TileRedWall {
		t.Error("Expected the reference grid")
	}
	if _, err := tiles.WallColor(world.TileBlueWall); err != nil {
		t.Errorf("Expected default palette: %v", err)
	}
}

func TestLoadWorld_StartMarker(t *testing.T) {
	dir := t.TempDir()
	mapFile := filepath.Join(dir, "room.map")
	room := "1111\n1+01\n1001\n1111\n"
	if err := os.WriteFile(mapFile, []byte(room), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.World.MapFile = mapFile

	if _, _, err := loadWorld(cfg); err != nil {
		t.Fatalf("loadWorld failed: %v", err)
	}
	if cfg.Camera.StartX != 1.5 || cfg.Camera.StartY != 1.5 {
		t.Errorf("Expected start (1.5, 1.5), got (%v, %v)", cfg.Camera.StartX, cfg.Camera.StartY)
	}
}

func TestLoadWorld_MissingTiles(t *testing.T) {
	cfg := config.Default()
	cfg.World.TilesFile = filepath.Join(t.TempDir(), "absent.yaml")

	if _, _, err := loadWorld(cfg); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}
