package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"raycaster/internal/mathutil"

	"gopkg.in/yaml.v3"
)

// Display backends
const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
)

// MaxDeltaScale is the most ticks one frame may advance when
// delta_time_scaling is on
const MaxDeltaScale = 4.0

// Config holds all renderer configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Movement MovementConfig `yaml:"movement"`
	Camera   CameraConfig   `yaml:"camera"`
	Graphics GraphicsConfig `yaml:"graphics"`
	World    WorldConfig    `yaml:"world"`
	Debug    DebugConfig    `yaml:"debug"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	Backend      string `yaml:"backend"` // "window" (ebiten) or "terminal" (tcell)
	TPS          int    `yaml:"tps"`     // Ticks per second the speeds below are tuned for
}

type MovementConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`     // Cells per tick
	RotationSpeed float64 `yaml:"rotation_speed"` // Radians per tick
	// DeltaTimeScaling scales both speeds by elapsed/tick so turning and
	// walking keep the same wall-clock rate when the frame rate drops.
	DeltaTimeScaling bool `yaml:"delta_time_scaling"`
}

// CameraConfig is the initial player state
type CameraConfig struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	DirX   float64 `yaml:"dir_x"`
	DirY   float64 `yaml:"dir_y"`
	PlaneX float64 `yaml:"plane_x"`
	PlaneY float64 `yaml:"plane_y"`
}

type GraphicsConfig struct {
	ColumnStride int          `yaml:"column_stride"` // Cast one ray every N pixels
	SideShading  bool         `yaml:"side_shading"`  // Darken walls hit on a Y grid line
	Parallel     bool         `yaml:"parallel"`      // Fan column casts out over the worker pool
	Workers      int          `yaml:"workers"`       // Pool size, 0 means one per CPU
	Colors       ColorsConfig `yaml:"colors"`
}

type ColorsConfig struct {
	Ceiling [3]int `yaml:"ceiling"`
	Floor   [3]int `yaml:"floor"`
	FPS     [3]int `yaml:"fps"`
}

type WorldConfig struct {
	MapFile   string `yaml:"map_file"`   // Empty means the built-in reference grid
	TilesFile string `yaml:"tiles_file"` // Empty means the built-in palette
}

type DebugConfig struct {
	PerfLog bool `yaml:"perf_log"`
}

// TileConfig is the layout of the tiles file
type TileConfig struct {
	TileData map[int]TileData `yaml:"tiles"`
}

// TileData describes one wall material
type TileData struct {
	Name      string `yaml:"name"`
	WallColor [3]int `yaml:"wall_color"`
}

var (
	ErrInvalidScreen   = errors.New("screen dimensions must be positive")
	ErrInvalidStride   = errors.New("column stride must be positive")
	ErrInvalidSpeed    = errors.New("speeds must be finite and non-negative")
	ErrUnsafeMoveSpeed = errors.New("move speed reaches a full cell per frame")
	ErrInvalidWorkers  = errors.New("worker count must be non-negative")
	ErrInvalidBackend  = errors.New("unknown display backend")
	ErrInvalidTPS      = errors.New("tps must be positive")
	ErrDegenerateView  = errors.New("camera direction must be non-zero")
	ErrColorOutOfRange = errors.New("color component outside 0-255")
)

// Default returns the configuration of the reference scene: an 800x800
// window, one ray every second column, the player at (3, 7) looking down +X.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  800,
			ScreenHeight: 800,
			WindowTitle:  "Raycaster",
			Backend:      BackendWindow,
			TPS:          60,
		},
		Movement: MovementConfig{
			MoveSpeed:     0.03,
			RotationSpeed: 0.02,
		},
		Camera: CameraConfig{
			StartX: 3.0,
			StartY: 7.0,
			DirX:   1.0,
			DirY:   0.0,
			PlaneX: 0.0,
			PlaneY: 0.5,
		},
		Graphics: GraphicsConfig{
			ColumnStride: 2,
			Parallel:     true,
			Colors: ColorsConfig{
				Ceiling: [3]int{25, 25, 25},
				Floor:   [3]int{50, 50, 50},
				FPS:     [3]int{255, 127, 80},
			},
		},
	}
}

// LoadConfig loads the configuration from a YAML file. Keys missing from the
// file keep their Default values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

// ParseConfig decodes YAML onto Default and validates the result
func ParseConfig(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects values the renderer cannot work with
func (c *Config) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidScreen, c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.Graphics.ColumnStride <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidStride, c.Graphics.ColumnStride)
	}
	if !validSpeed(c.Movement.MoveSpeed) || !validSpeed(c.Movement.RotationSpeed) {
		return fmt.Errorf("%w: move %v, rotation %v", ErrInvalidSpeed, c.Movement.MoveSpeed, c.Movement.RotationSpeed)
	}
	if c.Graphics.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Graphics.Workers)
	}
	if c.Display.TPS <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTPS, c.Display.TPS)
	}
	switch c.Display.Backend {
	case BackendWindow, BackendTerminal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Display.Backend)
	}
	if c.Camera.DirX == 0 && c.Camera.DirY == 0 {
		return ErrDegenerateView
	}
	// The mover only checks the destination cell on each axis, so one step
	// must stay under a cell or it can hop a one-cell wall.
	if step := c.MaxStep(); !(step < 1) {
		return fmt.Errorf("%w: %.3f cells", ErrUnsafeMoveSpeed, step)
	}
	for name, rgb := range map[string][3]int{
		"ceiling": c.Graphics.Colors.Ceiling,
		"floor":   c.Graphics.Colors.Floor,
		"fps":     c.Graphics.Colors.FPS,
	} {
		if err := ValidateRGB(rgb); err != nil {
			return fmt.Errorf("graphics.colors.%s: %w", name, err)
		}
	}
	return nil
}

// MaxStep returns the longest distance one frame can move the player
func (c *Config) MaxStep() float64 {
	step := c.Movement.MoveSpeed * mathutil.V(c.Camera.DirX, c.Camera.DirY).Len()
	if c.Movement.DeltaTimeScaling {
		step *= MaxDeltaScale
	}
	return step
}

func validSpeed(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// ValidateRGB checks that every component fits in a byte
func ValidateRGB(rgb [3]int) error {
	for _, c := range rgb {
		if c < 0 || c > 255 {
			return fmt.Errorf("%w: %v", ErrColorOutOfRange, rgb)
		}
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

func (c *Config) GetColumnStride() int {
	return c.Graphics.ColumnStride
}
