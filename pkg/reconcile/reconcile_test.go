package reconcile_test

import (
	"testing"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skubridge/skubridge/pkg/catalog"
	"github.com/skubridge/skubridge/pkg/platform"
	"github.com/skubridge/skubridge/pkg/reconcile"
)

const (
	platformA = platform.ID("storefront")
	platformB = platform.ID("marketplace")
)

var bothPlatforms = []platform.ID{platformA, platformB}

func candidate(id platform.ID, key string, price int64) catalog.Item {
	return catalog.Item{
		Key:         key,
		DisplayName: key + " name",
		Category:    "Widgets",
		PriceMinor:  price,
		Inventory:   map[string]int{id.String() + ":main": 10},
		Sources:     []platform.ID{id},
		State:       catalog.StatePending,
	}
}

func TestMergeSinglePlatformIsPending(t *testing.T) {
	now := utc.Now()
	outcome := reconcile.Merge(catalog.NewSet(), []reconcile.Batch{
		{Platform: platformA, Items: []catalog.Item{candidate(platformA, "X", 1000)}},
		{Platform: platformB},
	}, bothPlatforms, now)

	require.Len(t, outcome.Canonical, 1)
	item := outcome.Canonical["X"]
	assert.Equal(t, catalog.StatePending, item.State)
	assert.Equal(t, []platform.ID{platformA}, item.Sources)
	assert.Equal(t, now, item.LastSyncedAt)
	assert.Equal(t, 1, outcome.Tallies[platformA].Created)
}

func TestMergeBothPlatforms(t *testing.T) {
	aX := candidate(platformA, "X", 1000)
	bX := candidate(platformB, "X", 1200)
	bY := candidate(platformB, "Y", 500)

	outcome := reconcile.Merge(catalog.NewSet(), []reconcile.Batch{
		{Platform: platformA, Items: []catalog.Item{aX}},
		{Platform: platformB, Items: []catalog.Item{bX, bY}},
	}, bothPlatforms, utc.Now())

	require.Len(t, outcome.Canonical, 2)

	x := outcome.Canonical["X"]
	assert.Equal(t, int64(1200), x.PriceMinor, "later-fetched platform's price wins")
	assert.ElementsMatch(t, []platform.ID{platformA, platformB}, x.Sources)
	assert.Equal(t, catalog.StateSynced, x.State)

	// Inventory is a disjoint union of platform-scoped locations, never
	// summed across platforms.
	assert.Equal(t, 10, x.Inventory["storefront:main"])
	assert.Equal(t, 10, x.Inventory["marketplace:main"])

	y := outcome.Canonical["Y"]
	assert.Equal(t, catalog.StatePending, y.State)
	assert.Equal(t, []platform.ID{platformB}, y.Sources)

	assert.Equal(t, 1, outcome.Tallies[platformA].Created)
	assert.Equal(t, 2, outcome.Tallies[platformB].Created)
}

func TestMergeRetainsMissingKeysAsStale(t *testing.T) {
	previous := catalog.Set{
		"OLD": {
			Key:     "OLD",
			State:   catalog.StateSynced,
			Sources: []platform.ID{platformA, platformB},
		},
	}

	outcome := reconcile.Merge(previous, []reconcile.Batch{
		{Platform: platformA, Items: []catalog.Item{candidate(platformA, "X", 100)}},
		{Platform: platformB},
	}, bothPlatforms, utc.Now())

	// A transient fetch failure must not delete catalog data.
	require.Contains(t, outcome.Canonical, "OLD")
	assert.Equal(t, catalog.StateSynced, outcome.Canonical["OLD"].State, "stale state left as-is")
	assert.Equal(t, []string{"OLD"}, outcome.StaleKeys)
}

func TestMergeInPlatformDuplicateLastWins(t *testing.T) {
	first := candidate(platformA, "X", 100)
	second := candidate(platformA, "X", 200)

	outcome := reconcile.Merge(catalog.NewSet(), []reconcile.Batch{
		{Platform: platformA, Items: []catalog.Item{first, second}},
		{Platform: platformB},
	}, bothPlatforms, utc.Now())

	assert.Equal(t, int64(200), outcome.Canonical["X"].PriceMinor)
	require.Len(t, outcome.Duplicates, 1)
	assert.Equal(t, reconcile.Duplicate{Platform: platformA, Key: "X"}, outcome.Duplicates[0])

	// A duplicate is a warning, not an error, and the key counts once.
	assert.Equal(t, 1, outcome.Tallies[platformA].Created)
}

func TestMergeIdempotent(t *testing.T) {
	batches := func() []reconcile.Batch {
		return []reconcile.Batch{
			{Platform: platformA, Items: []catalog.Item{candidate(platformA, "X", 1000)}},
			{Platform: platformB, Items: []catalog.Item{candidate(platformB, "X", 1200), candidate(platformB, "Y", 500)}},
		}
	}

	now := utc.Now()
	first := reconcile.Merge(catalog.NewSet(), batches(), bothPlatforms, now)
	second := reconcile.Merge(first.Canonical, batches(), bothPlatforms, now)

	assert.Equal(t, first.Canonical, second.Canonical)

	// No item re-enters Pending: X stays Synced, Y stays Pending by virtue
	// of still missing a platform, not by regressing.
	assert.Equal(t, catalog.StateSynced, second.Canonical["X"].State)

	// The second run sees the keys as existing, so they tally as updates.
	assert.Zero(t, second.Tallies[platformA].Created)
	assert.Equal(t, 1, second.Tallies[platformA].Updated)
}

func TestMergeCommutativeForDisjointKeys(t *testing.T) {
	aBatch := reconcile.Batch{Platform: platformA, Items: []catalog.Item{candidate(platformA, "A1", 100)}}
	bBatch := reconcile.Batch{Platform: platformB, Items: []catalog.Item{candidate(platformB, "B1", 200)}}

	now := utc.Now()
	forward := reconcile.Merge(catalog.NewSet(), []reconcile.Batch{aBatch, bBatch}, bothPlatforms, now)
	reverse := reconcile.Merge(catalog.NewSet(), []reconcile.Batch{bBatch, aBatch}, bothPlatforms, now)

	assert.Equal(t, forward.Canonical, reverse.Canonical)
}

func TestMergeDeterministicReportOrder(t *testing.T) {
	previous := catalog.Set{
		"Z-OLD": {Key: "Z-OLD"},
		"A-OLD": {Key: "A-OLD"},
	}

	outcome := reconcile.Merge(previous, []reconcile.Batch{
		{Platform: platformA},
		{Platform: platformB},
	}, bothPlatforms, utc.Now())

	assert.Equal(t, []string{"A-OLD", "Z-OLD"}, outcome.StaleKeys)
}
