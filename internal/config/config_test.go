package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/samdwyer/tinyrogue/internal/world"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Generator.Options() != (world.Options{
		Width:       world.DefaultWidth,
		Height:      world.DefaultHeight,
		Features:    world.DefaultFeatures,
		RoomChance:  world.DefaultRoomChance,
		Quality:     world.DefaultQuality,
		MaxAttempts: world.DefaultMaxAttempts,
	}) {
		t.Errorf("default generator options = %+v", cfg.Generator.Options())
	}
	if cfg.LightRadius != 4 {
		t.Errorf("LightRadius = %d, want 4", cfg.LightRadius)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tinyrogue.yaml")
	content := `
seed: 4242
light_radius: 6
generator:
  features: 14
  room_chance: 50
population:
  enemy_min: 0
  enemy_max: 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Seed != 4242 || cfg.LightRadius != 6 {
		t.Errorf("seed/light = %d/%d, want 4242/6", cfg.Seed, cfg.LightRadius)
	}
	if cfg.Generator.Features != 14 || cfg.Generator.RoomChance != 50 {
		t.Errorf("generator = %+v", cfg.Generator)
	}
	// Untouched keys keep their defaults.
	if cfg.Generator.Quality != world.DefaultQuality || cfg.Population.RupeeMax != 5 {
		t.Errorf("defaults lost: %+v %+v", cfg.Generator, cfg.Population)
	}
	if cfg.Population.EnemyMax != 2 {
		t.Errorf("EnemyMax = %d, want 2", cfg.Population.EnemyMax)
	}
}

func TestLoadZeroRoomChance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tinyrogue.yaml")
	if err := os.WriteFile(path, []byte("generator:\n  room_chance: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	g, err := world.NewGenerator(cfg.Generator.Options(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewGenerator error: %v", err)
	}
	if got := g.Options().RoomChance; got != 0 {
		t.Errorf("RoomChance = %d, want 0", got)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TINYROGUE_SEED", "-17")
	t.Setenv("TINYROGUE_FEATURES", "20")
	t.Setenv("TINYROGUE_TELEMETRY", "true")
	t.Setenv("TINYROGUE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Seed != -17 || cfg.Generator.Features != 20 {
		t.Errorf("seed/features = %d/%d", cfg.Seed, cfg.Generator.Features)
	}
	if !cfg.Telemetry.Enabled || cfg.LogLevel != "debug" {
		t.Errorf("telemetry/log level = %v/%q", cfg.Telemetry.Enabled, cfg.LogLevel)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected an error for a missing file")
		}
	})

	t.Run("bad env", func(t *testing.T) {
		t.Setenv("TINYROGUE_LIGHT_RADIUS", "wide")
		if _, err := Load(""); err == nil {
			t.Error("expected an error for a non-numeric radius")
		}
	})

	t.Run("invalid range", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("population:\n  enemy_min: 4\n  enemy_max: 2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, ErrInvalid) {
			t.Errorf("Load error = %v, want ErrInvalid", err)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"room chance", func(c *Config) { c.Generator.RoomChance = 150 }},
		{"features", func(c *Config) { c.Generator.Features = 0 }},
		{"rupees", func(c *Config) { c.Population.RupeeMin = -1 }},
		{"hp", func(c *Config) { c.Player.HP = 0 }},
		{"light", func(c *Config) { c.LightRadius = -2 }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}
