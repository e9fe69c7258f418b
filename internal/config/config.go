// Package config loads tinyrogue settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/tinyrogue/internal/world"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `yaml:"seed"`

	Generator  GeneratorConfig  `yaml:"generator"`
	Population PopulationConfig `yaml:"population"`
	Player     PlayerConfig     `yaml:"player"`

	// LightRadius is the radius of the lit disk around the player and torches.
	LightRadius int `yaml:"light_radius"`

	LogFile   string          `yaml:"log_file"`
	LogLevel  string          `yaml:"log_level"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// GeneratorConfig mirrors world.Options.
type GeneratorConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	Features    int `yaml:"features"`
	RoomChance  int `yaml:"room_chance"`
	Quality     int `yaml:"quality"`
	MaxAttempts int `yaml:"max_attempts"`
}

// Options converts the section to generator options.
func (g GeneratorConfig) Options() world.Options {
	return world.Options{
		Width:       g.Width,
		Height:      g.Height,
		Features:    g.Features,
		RoomChance:  g.RoomChance,
		Quality:     g.Quality,
		MaxAttempts: g.MaxAttempts,
	}
}

// PopulationConfig bounds how many actors are spawned per floor.
type PopulationConfig struct {
	EnemyMin int `yaml:"enemy_min"`
	EnemyMax int `yaml:"enemy_max"`
	RupeeMin int `yaml:"rupee_min"`
	RupeeMax int `yaml:"rupee_max"`
}

// PlayerConfig holds the player's starting stats.
type PlayerConfig struct {
	HP      int `yaml:"hp"`
	Damage  int `yaml:"damage"`
	Torches int `yaml:"torches"`
	Maps    int `yaml:"maps"`
}

// TelemetryConfig controls the OTLP trace exporter.
type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dataset string `yaml:"dataset"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Generator: GeneratorConfig{
			Width:       world.DefaultWidth,
			Height:      world.DefaultHeight,
			Features:    world.DefaultFeatures,
			RoomChance:  world.DefaultRoomChance,
			Quality:     world.DefaultQuality,
			MaxAttempts: world.DefaultMaxAttempts,
		},
		Population: PopulationConfig{
			EnemyMin: 1,
			EnemyMax: 5,
			RupeeMin: 1,
			RupeeMax: 5,
		},
		Player: PlayerConfig{
			HP:      100,
			Damage:  10,
			Torches: 3,
			Maps:    1,
		},
		LightRadius: 4,
		LogFile:     "tinyrogue.log",
		LogLevel:    "info",
		Telemetry: TelemetryConfig{
			Dataset: "tinyrogue",
		},
	}
}

// Load starts from Default, overlays the YAML file at path (skipped when
// path is empty), then applies TINYROGUE_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	ints := map[string]*int{
		"TINYROGUE_FEATURES":     &c.Generator.Features,
		"TINYROGUE_ROOM_CHANCE":  &c.Generator.RoomChance,
		"TINYROGUE_LIGHT_RADIUS": &c.LightRadius,
	}
	for key, dst := range ints {
		val := strings.TrimSpace(os.Getenv(key))
		if val == "" {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("env %s: %w", key, err)
		}
		*dst = n
	}

	if val := strings.TrimSpace(os.Getenv("TINYROGUE_SEED")); val != "" {
		seed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("env TINYROGUE_SEED: %w", err)
		}
		c.Seed = seed
	}
	if val := strings.TrimSpace(os.Getenv("TINYROGUE_TELEMETRY")); val != "" {
		enabled, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("env TINYROGUE_TELEMETRY: %w", err)
		}
		c.Telemetry.Enabled = enabled
	}
	if val := strings.TrimSpace(os.Getenv("TINYROGUE_LOG_LEVEL")); val != "" {
		c.LogLevel = val
	}
	if val := strings.TrimSpace(os.Getenv("TINYROGUE_LOG_FILE")); val != "" {
		c.LogFile = val
	}
	return nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	p := c.Population
	switch {
	case c.Generator.RoomChance < 0 || c.Generator.RoomChance > 100:
		return fmt.Errorf("%w: room_chance %d outside 0..100", ErrInvalid, c.Generator.RoomChance)
	case c.Generator.Features < 1:
		return fmt.Errorf("%w: features must be at least 1", ErrInvalid)
	case p.EnemyMin < 0 || p.EnemyMax < p.EnemyMin:
		return fmt.Errorf("%w: enemy range %d..%d", ErrInvalid, p.EnemyMin, p.EnemyMax)
	case p.RupeeMin < 0 || p.RupeeMax < p.RupeeMin:
		return fmt.Errorf("%w: rupee range %d..%d", ErrInvalid, p.RupeeMin, p.RupeeMax)
	case c.Player.HP < 1:
		return fmt.Errorf("%w: player hp %d", ErrInvalid, c.Player.HP)
	case c.LightRadius < 0:
		return fmt.Errorf("%w: light_radius %d", ErrInvalid, c.LightRadius)
	}
	return nil
}
