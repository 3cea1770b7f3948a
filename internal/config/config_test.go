package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMatchesReferenceScene(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if cfg.GetScreenWidth() != 800 || cfg.GetScreenHeight() != 800 {
		t.Errorf("Expected 800x800 screen, got %dx%d", cfg.GetScreenWidth(), cfg.GetScreenHeight())
	}
	if cfg.GetRotSpeed() != 0.02 {
		t.Errorf("Expected rotation speed 0.02, got %v", cfg.GetRotSpeed())
	}
	if cfg.GetMoveSpeed() != 0.03 {
		t.Errorf("Expected move speed 0.03, got %v", cfg.GetMoveSpeed())
	}
	if cfg.GetColumnStride() != 2 {
		t.Errorf("Expected column stride 2, got %d", cfg.GetColumnStride())
	}
	if cfg.Movement.DeltaTimeScaling {
		t.Error("Delta time scaling should be off by default")
	}
}

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("movement:\n  move_speed: 0.05\n"))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.GetMoveSpeed() != 0.05 {
		t.Errorf("Expected overridden move speed 0.05, got %v", cfg.GetMoveSpeed())
	}
	if cfg.GetRotSpeed() != 0.02 {
		t.Errorf("Expected default rotation speed to survive, got %v", cfg.GetRotSpeed())
	}
	if cfg.Camera.PlaneY != 0.5 {
		t.Errorf("Expected default camera plane, got %v", cfg.Camera.PlaneY)
	}
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"zero width", "display:\n  screen_width: 0\n", ErrInvalidScreen},
		{"zero stride", "graphics:\n  column_stride: 0\n", ErrInvalidStride},
		{"negative speed", "movement:\n  move_speed: -1\n", ErrInvalidSpeed},
		{"nan speed", "movement:\n  move_speed: .nan\n", ErrInvalidSpeed},
		{"infinite rotation", "movement:\n  rotation_speed: .inf\n", ErrInvalidSpeed},
		{"negative workers", "graphics:\n  workers: -2\n", ErrInvalidWorkers},
		{"bad backend", "display:\n  backend: opengl\n", ErrInvalidBackend},
		{"zero tps", "display:\n  tps: 0\n", ErrInvalidTPS},
		{"zero direction", "camera:\n  dir_x: 0\n  dir_y: 0\n", ErrDegenerateView},
		{"color overflow", "graphics:\n  colors:\n    floor: [50, 300, 50]\n", ErrColorOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "display:\n  backend: terminal\n  tps: 30\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Display.Backend != BackendTerminal || cfg.Display.TPS != 30 {
		t.Errorf("Unexpected display config: %+v", cfg.Display)
	}
}

func TestLoadRepositoryConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "config.yaml"))
	if err != nil {
		t.Fatalf("Repository config.yaml should load: %v", err)
	}
	if cfg.GetColumnStride() <= 0 {
		t.Errorf("Expected positive stride, got %d", cfg.GetColumnStride())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestValidateMoveSpeedStaysUnderOneCell(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"full cell", "movement:\n  move_speed: 1\n", ErrUnsafeMoveSpeed},
		{"past a cell", "movement:\n  move_speed: 1.5\n", ErrUnsafeMoveSpeed},
		{"just under", "movement:\n  move_speed: 0.99\n", nil},
		{"scaled to a cell", "movement:\n  move_speed: 0.25\n  delta_time_scaling: true\n", ErrUnsafeMoveSpeed},
		{"scaled under", "movement:\n  move_speed: 0.2\n  delta_time_scaling: true\n", nil},
		{"long direction", "movement:\n  move_speed: 0.6\ncamera:\n  dir_x: 2\n", ErrUnsafeMoveSpeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestMaxStep(t *testing.T) {
	cfg := Default()
	if got := cfg.MaxStep(); got != 0.03 {
		t.Errorf("Expected max step 0.03, got %v", got)
	}
	cfg.Movement.DeltaTimeScaling = true
	if got := cfg.MaxStep(); got != 0.03*MaxDeltaScale {
		t.Errorf("Expected scaled max step %v, got %v", 0.03*MaxDeltaScale, got)
	}
}
