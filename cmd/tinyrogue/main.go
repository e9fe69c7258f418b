// Package main is the entry point for tinyrogue.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/samdwyer/tinyrogue/internal/config"
	"github.com/samdwyer/tinyrogue/internal/game"
	"github.com/samdwyer/tinyrogue/internal/gamedata"
	"github.com/samdwyer/tinyrogue/internal/telemetry"
	"github.com/samdwyer/tinyrogue/internal/ui"
	"github.com/samdwyer/tinyrogue/internal/world"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	seed := flag.Int64("seed", 0, "dungeon seed (0 uses the config seed, or the clock)")
	dump := flag.Bool("dump", false, "print the first floor for the seed and exit")
	check := flag.Int("check", 0, "generate this many consecutive seeds, verify connectivity and exit")
	flag.Parse()

	console := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		console.Debug().Err(err).Msg(".env file not loaded")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		console.Fatal().Err(err).Msg("load config")
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ctx := context.Background()

	switch {
	case *dump:
		if err := dumpFloor(ctx, cfg); err != nil {
			console.Fatal().Err(err).Msg("dump")
		}
		return
	case *check > 0:
		if failed := checkSeeds(ctx, cfg, *check, console); failed > 0 {
			os.Exit(1)
		}
		return
	}

	logger, closeLog, err := fileLogger(cfg)
	if err != nil {
		console.Fatal().Err(err).Msg("open log file")
	}
	defer closeLog()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, telemetry.Options{
			Dataset: cfg.Telemetry.Dataset,
			Seed:    cfg.Seed,
		})
		if err != nil {
			// Continue without telemetry - game still works
			logger.Warn().Err(err).Msg("telemetry setup failed")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("telemetry shutdown")
				}
			}()
		}
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("game error")
		console.Error().Err(err).Msg("game error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	registry, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		return fmt.Errorf("load game data: %w", err)
	}
	session, err := game.NewSession(cfg, registry, logger)
	if err != nil {
		return err
	}
	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	return game.New(session, screen, logger).Run(ctx)
}

// fileLogger writes JSON logs to the configured file, since the terminal
// belongs to the game.
func fileLogger(cfg config.Config) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	if cfg.LogFile == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, func() { f.Close() }, nil
}

func dumpFloor(ctx context.Context, cfg config.Config) error {
	gen, err := world.NewGenerator(cfg.Generator.Options(), zerolog.Nop())
	if err != nil {
		return err
	}
	m, err := gen.Generate(ctx, cfg.Seed)
	if err != nil {
		return err
	}
	fmt.Printf("seed %d, %d rooms, %d features\n", cfg.Seed, len(m.Rooms), m.Features)
	fmt.Print(m.String())
	return nil
}

// checkSeeds generates n maps starting at the configured seed and reports
// any that fail to generate or are not fully connected.
func checkSeeds(ctx context.Context, cfg config.Config, n int, logger zerolog.Logger) int {
	gen, err := world.NewGenerator(cfg.Generator.Options(), logger)
	if err != nil {
		logger.Error().Err(err).Msg("create generator")
		return 1
	}

	failed := 0
	for i := 0; i < n; i++ {
		seed := cfg.Seed + int64(i)
		m, err := gen.Generate(ctx, seed)
		switch {
		case err != nil:
			failed++
			logger.Error().Err(err).Int64("seed", seed).Msg("generation failed")
		case !m.Connected():
			failed++
			logger.Error().Int64("seed", seed).Msg("map is not connected")
		}
	}
	logger.Info().Int("checked", n).Int("failed", failed).Msg("check complete")
	return failed
}
