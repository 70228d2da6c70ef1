package normalize_test

import (
	"testing"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skubridge/skubridge/pkg/catalog"
	"github.com/skubridge/skubridge/pkg/normalize"
	"github.com/skubridge/skubridge/pkg/platform"
)

const testPlatform = platform.ID("storefront")

func TestRecordsKeepsEveryRecordWithSKU(t *testing.T) {
	now := utc.Now()
	records := []platform.RawRecord{
		{NativeID: "n1", SKU: "SKU-1", Name: "Widget"},
		{NativeID: "n2", SKU: "SKU-2", Name: "Gadget"},
		{NativeID: "n3", SKU: "SKU-3"},
	}

	result := normalize.Records(testPlatform, records, now)

	require.Len(t, result.Items, 3)
	assert.Zero(t, result.ErrorCount())
}

func TestRecordsDropsEmptySKU(t *testing.T) {
	now := utc.Now()
	records := []platform.RawRecord{
		{NativeID: "n1", SKU: "SKU-1"},
		{NativeID: "n2", SKU: ""},
		{NativeID: "n3", SKU: ""},
	}

	result := normalize.Records(testPlatform, records, now)

	require.Len(t, result.Items, 1)
	require.Equal(t, 2, result.ErrorCount())

	// Dropped records keep the platform-native ID for traceability.
	assert.Equal(t, "n2", result.Dropped[0].NativeID)
	assert.Equal(t, "n3", result.Dropped[1].NativeID)
}

func TestRecordsDefaults(t *testing.T) {
	now := utc.Now()
	records := []platform.RawRecord{
		{NativeID: "n1", SKU: "SKU-1", PriceMinor: -50},
	}

	result := normalize.Records(testPlatform, records, now)

	require.Len(t, result.Items, 1)
	item := result.Items[0]
	assert.Equal(t, normalize.DefaultCategory, item.Category)
	assert.Equal(t, "", item.Brand)
	assert.Equal(t, int64(0), item.PriceMinor)
	assert.Equal(t, 0.0, item.WeightGrams)
	assert.Equal(t, catalog.StatePending, item.State)
	assert.Equal(t, []platform.ID{testPlatform}, item.Sources)
}

func TestRecordsScopesInventoryByPlatform(t *testing.T) {
	now := utc.Now()
	records := []platform.RawRecord{
		{
			NativeID: "n1",
			SKU:      "SKU-1",
			Inventory: map[string]int{
				"warehouse-1": 5,
				"warehouse-2": -3, // clamped
			},
		},
	}

	result := normalize.Records(testPlatform, records, now)

	require.Len(t, result.Items, 1)
	inv := result.Items[0].Inventory
	assert.Equal(t, 5, inv["storefront:warehouse-1"])
	assert.Equal(t, 0, inv["storefront:warehouse-2"])
}

func TestUnitConversion(t *testing.T) {
	tests := []struct {
		name   string
		record platform.RawRecord
		grams  float64
		mm     float64
	}{
		{
			name:   "kilograms and centimeters",
			record: platform.RawRecord{SKU: "S", Weight: 1.5, WeightUnit: "kg", Length: 20, DimensionUnit: "cm"},
			grams:  1500,
			mm:     200,
		},
		{
			name:   "pounds and inches",
			record: platform.RawRecord{SKU: "S", Weight: 2, WeightUnit: "lb", Length: 10, DimensionUnit: "in"},
			grams:  907.18474,
			mm:     254,
		},
		{
			name:   "already canonical",
			record: platform.RawRecord{SKU: "S", Weight: 300, WeightUnit: "g", Length: 40, DimensionUnit: "mm"},
			grams:  300,
			mm:     40,
		},
		{
			name:   "unspecified units treated as canonical",
			record: platform.RawRecord{SKU: "S", Weight: 120, Length: 33},
			grams:  120,
			mm:     33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalize.Records(testPlatform, []platform.RawRecord{tt.record}, utc.Now())
			require.Len(t, result.Items, 1)
			assert.InDelta(t, tt.grams, result.Items[0].WeightGrams, 1e-9)
			assert.InDelta(t, tt.mm, result.Items[0].Dimensions.Length, 1e-9)
		})
	}
}
