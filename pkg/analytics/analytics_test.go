package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skubridge/skubridge/pkg/analytics"
	"github.com/skubridge/skubridge/pkg/catalog"
)

func stockedItem(key, category string, price int64, quantities map[string]int) catalog.Item {
	return catalog.Item{
		Key:         key,
		DisplayName: key + " name",
		Category:    category,
		PriceMinor:  price,
		Inventory:   quantities,
		State:       catalog.StateSynced,
	}
}

func TestLowStockAlerts(t *testing.T) {
	items := catalog.Set{
		"OUT":    stockedItem("OUT", "Widgets", 100, map[string]int{"a:main": 0}),
		"LOW":    stockedItem("LOW", "Widgets", 100, map[string]int{"a:main": 2, "b:main": 3}),
		"EDGE":   stockedItem("EDGE", "Widgets", 100, map[string]int{"a:main": 10}),
		"FINE":   stockedItem("FINE", "Widgets", 100, map[string]int{"a:main": 11}),
		"PLENTY": stockedItem("PLENTY", "Widgets", 100, map[string]int{"a:main": 500}),
	}

	alerts := analytics.LowStockAlerts(items, 10)

	// Quantities {0, 5, 10} alert; 11 and 500 do not. Ascending by quantity.
	require.Len(t, alerts, 3)
	assert.Equal(t, "OUT", alerts[0].Key)
	assert.Equal(t, analytics.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "LOW", alerts[1].Key)
	assert.Equal(t, analytics.SeverityWarning, alerts[1].Severity)
	assert.Equal(t, 5, alerts[1].TotalQuantity)
	assert.Equal(t, "EDGE", alerts[2].Key)
	assert.Equal(t, analytics.SeverityWarning, alerts[2].Severity)

	// The per-location breakdown is carried through.
	assert.Equal(t, map[string]int{"a:main": 2, "b:main": 3}, alerts[1].ByLocation)
}

func TestLowStockAlertsDoesNotMutateSnapshot(t *testing.T) {
	items := catalog.Set{
		"X": stockedItem("X", "Widgets", 100, map[string]int{"a:main": 1}),
	}

	alerts := analytics.LowStockAlerts(items, 10)
	require.Len(t, alerts, 1)
	alerts[0].ByLocation["a:main"] = 999

	assert.Equal(t, 1, items["X"].Inventory["a:main"])
}

func TestCategoryBreakdown(t *testing.T) {
	items := catalog.Set{
		"W1": stockedItem("W1", "Widgets", 100, map[string]int{"a:main": 2}),
		"W2": stockedItem("W2", "Widgets", 250, map[string]int{"a:main": 4}),
		"G1": stockedItem("G1", "Gadgets", 1000, map[string]int{"a:main": 1}),
	}

	breakdown := analytics.CategoryBreakdown(items)

	require.Len(t, breakdown, 2)
	assert.Equal(t, analytics.CategoryStats{Items: 2, Units: 6, ValueMinor: 1200}, breakdown["Widgets"])
	assert.Equal(t, analytics.CategoryStats{Items: 1, Units: 1, ValueMinor: 1000}, breakdown["Gadgets"])
}

func TestTopItemsByValue(t *testing.T) {
	items := catalog.Set{
		"CHEAP": stockedItem("CHEAP", "W", 10, map[string]int{"a:main": 10}),
		"MID":   stockedItem("MID", "W", 500, map[string]int{"a:main": 2}),
		"BIG":   stockedItem("BIG", "W", 2000, map[string]int{"a:main": 3}),
		"TIE":   stockedItem("TIE", "W", 1000, map[string]int{"a:main": 1}),
	}

	top := analytics.TopItemsByValue(items, 3)

	require.Len(t, top, 3)
	assert.Equal(t, "BIG", top[0].Key)
	// Ties break by key for a stable order.
	assert.Equal(t, "MID", top[1].Key)
	assert.Equal(t, "TIE", top[2].Key)
}

func TestTotalInventoryValue(t *testing.T) {
	items := catalog.Set{
		"A": stockedItem("A", "W", 100, map[string]int{"a:main": 3}),
		"B": stockedItem("B", "W", 50, map[string]int{"a:main": 2, "b:x": 2}),
	}

	assert.Equal(t, int64(500), analytics.TotalInventoryValue(items))
	assert.Zero(t, analytics.TotalInventoryValue(catalog.NewSet()))
}
