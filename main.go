package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"raycaster/internal/config"
	"raycaster/internal/game"
	"raycaster/internal/terminal"
	"raycaster/internal/world"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: Failed to load .env: %v", err)
	}

	// Load configuration
	configPath := "config.yaml"
	if path, ok := os.LookupEnv(config.EnvConfigFile); ok && path != "" {
		configPath = path
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		log.Fatal(err)
	}

	grid, tiles, err := loadWorld(cfg)
	if err != nil {
		log.Fatal(err)
	}

	switch cfg.Display.Backend {
	case config.BackendTerminal:
		err = runTerminal(cfg, grid, tiles)
	default:
		err = runWindow(cfg, grid, tiles)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the config file, falling back to defaults when it is absent
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: %s not found, using defaults", path)
		return config.Default(), nil
	}
	return cfg, err
}

// loadWorld loads the grid and palette named in the config. A map with a
// start marker overrides the configured start position.
func loadWorld(cfg *config.Config) (*world.Grid, *world.TileManager, error) {
	tiles := world.DefaultTileManager()
	if cfg.World.TilesFile != "" {
		tiles = world.NewTileManager()
		if err := tiles.LoadTileConfig(cfg.World.TilesFile); err != nil {
			return nil, nil, err
		}
	}

	if cfg.World.MapFile == "" {
		return world.ReferenceGrid(), tiles, nil
	}

	mapData, err := world.NewMapLoader().LoadMap(cfg.World.MapFile)
	if err != nil {
		return nil, nil, err
	}
	grid, err := mapData.Grid()
	if err != nil {
		return nil, nil, fmt.Errorf("map file %s: %w", cfg.World.MapFile, err)
	}
	if mapData.HasStart() {
		cfg.Camera.StartX = float64(mapData.StartX) + 0.5
		cfg.Camera.StartY = float64(mapData.StartY) + 0.5
	}
	return grid, tiles, nil
}

func runWindow(cfg *config.Config, grid *world.Grid, tiles *world.TileManager) error {
	g, err := game.NewRaycastGame(cfg, grid, tiles)
	if err != nil {
		return err
	}
	defer g.Shutdown()

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Display.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runTerminal(cfg *config.Config, grid *world.Grid, tiles *world.TileManager) error {
	session, err := game.NewSession(cfg, grid, tiles)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return terminal.New(screen, session).Run(ctx)
}
