// Package app wires the skubridge CLI together: configuration loading,
// logger setup, engine construction with demo platform adapters, and
// signal-aware context handling.
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/skubridge/skubridge"
	"github.com/skubridge/skubridge/internal/platforms/memory"
	"github.com/skubridge/skubridge/pkg/errors"
	"github.com/skubridge/skubridge/pkg/logging"
	"github.com/skubridge/skubridge/pkg/platform"
)

// App bundles the loaded configuration and constructed engine for command
// handlers.
type App struct {
	Config *Config
	Engine skubridge.Engine
}

// New loads configuration, configures logging, and builds the engine with
// two in-memory demo adapters seeded from the configured files.
func New() (*App, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	setupLogging(config)

	adapterA, err := newAdapter(platform.ID(config.PlatformA), config.SeedA)
	if err != nil {
		return nil, err
	}
	adapterB, err := newAdapter(platform.ID(config.PlatformB), config.SeedB)
	if err != nil {
		return nil, err
	}

	engine, err := skubridge.New(
		skubridge.WithAdapters(adapterA, adapterB),
		skubridge.WithStorePath(config.StorePath),
	)
	if err != nil {
		return nil, err
	}

	return &App{Config: config, Engine: engine}, nil
}

// newAdapter builds one in-memory adapter, seeded from a YAML record file
// when one is configured.
func newAdapter(id platform.ID, seedPath string) (*memory.Adapter, error) {
	adapter := memory.New(id)
	if seedPath == "" {
		return adapter, nil
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, errors.WrapStorage("read", seedPath, err)
	}

	var records []platform.RawRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errors.WrapStorage("read", seedPath, err)
	}

	adapter.Seed(records...)
	logging.Debug().
		Str("platform", id.String()).
		Str("seed", seedPath).
		Int("records", len(records)).
		Msg("Seeded demo adapter")
	return adapter, nil
}

// setupLogging applies the configured log level and format.
func setupLogging(config *Config) {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if config.Verbose {
		level = zerolog.DebugLevel
	}
	if config.Quiet {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.LogFormat == "json" {
		logging.SetDefault(logging.NewJSON(os.Stderr))
	}
}

// ContextWithSignals returns a context cancelled on SIGINT or SIGTERM.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
