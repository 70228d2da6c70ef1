package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// avoid picking up a developer's .skubridge.yaml
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "data/catalog.yaml", config.StorePath)
	assert.Equal(t, 5*time.Minute, config.Interval)
	assert.Equal(t, 10, config.Threshold)
	assert.Equal(t, "storefront", config.PlatformA)
	assert.Equal(t, "marketplace", config.PlatformB)
}

func TestNewAdapterSeedsFromYAML(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seed, []byte(`
- native_id: n1
  sku: SKU-1
  name: Widget
  price_minor: 1200
  inventory:
    main: 5
- native_id: n2
  sku: SKU-2
  name: Gadget
`), 0o644))

	adapter, err := newAdapter("storefront", seed)
	require.NoError(t, err)

	records, err := adapter.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "SKU-1", records[0].SKU)
	assert.Equal(t, int64(1200), records[0].PriceMinor)
	assert.Equal(t, 5, records[0].Inventory["main"])
}

func TestNewAdapterMissingSeedFile(t *testing.T) {
	_, err := newAdapter("storefront", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestNewAdapterNoSeed(t *testing.T) {
	adapter, err := newAdapter("storefront", "")
	require.NoError(t, err)

	records, err := adapter.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}
