package config

import (
	"fmt"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment overrides, applied after the YAML file
const (
	EnvConfigFile = "RAYCASTER_CONFIG"
	EnvBackend    = "RAYCASTER_BACKEND"
	EnvMapFile    = "RAYCASTER_MAP"
	EnvTilesFile  = "RAYCASTER_TILES"
	EnvTPS        = "RAYCASTER_TPS"
	EnvPerfLog    = "RAYCASTER_PERF_LOG"
)

// LoadEnvFile merges a dotenv file into the process environment. Variables
// that are already set keep their values.
func LoadEnvFile(path string) error {
	return godotenv.Load(path)
}

// ApplyEnv overrides config values from RAYCASTER_* variables and validates
// the result. lookup is os.LookupEnv outside tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBackend); ok && v != "" {
		c.Display.Backend = v
	}
	if v, ok := lookup(EnvMapFile); ok {
		c.World.MapFile = v
	}
	if v, ok := lookup(EnvTilesFile); ok {
		c.World.TilesFile = v
	}
	if v, ok := lookup(EnvTPS); ok && v != "" {
		tps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTPS, err)
		}
		c.Display.TPS = tps
	}
	if v, ok := lookup(EnvPerfLog); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPerfLog, err)
		}
		c.Debug.PerfLog = enabled
	}
	return c.Validate()
}
