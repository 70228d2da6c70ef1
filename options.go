package skubridge

import (
	pkgerrors "github.com/skubridge/skubridge/pkg/errors"
	"github.com/skubridge/skubridge/pkg/platform"
	"github.com/skubridge/skubridge/pkg/store"
)

// Option is a function that configures an Engine instance
type Option func(*config) error

// config holds engine construction settings.
type config struct {
	adapters  platform.Adapters
	storePath string
	store     *store.Store
}

// defaultConfig returns the baseline engine configuration.
func defaultConfig() *config {
	return &config{
		storePath: "data/catalog.yaml",
	}
}

// options applies the given options to the engine config.
func (e *engine) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(e.config); err != nil {
			return err
		}
	}
	return nil
}

// WithAdapters configures the platform adapters, in fetch-precedence order:
// when two platforms report the same SKU, the later adapter's fields win the
// merge.
func WithAdapters(adapters ...platform.Adapter) Option {
	return func(c *config) error {
		seen := make(map[platform.ID]bool, len(adapters))
		for _, adapter := range adapters {
			if seen[adapter.ID()] {
				return &pkgerrors.ConfigError{
					Component: "adapters",
					Message:   "duplicate platform ID " + adapter.ID().String(),
				}
			}
			seen[adapter.ID()] = true
		}
		c.adapters = adapters
		return nil
	}
}

// WithStorePath configures where the canonical snapshot file is kept.
func WithStorePath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return &pkgerrors.ConfigError{
				Component: "store",
				Message:   "store path must not be empty",
			}
		}
		c.storePath = path
		return nil
	}
}

// WithStore configures a pre-built store, overriding WithStorePath.
func WithStore(s *store.Store) Option {
	return func(c *config) error {
		c.store = s
		return nil
	}
}
