// Package normalize converts platform-native raw records into canonical
// catalog item candidates. This is the only place platform schema drift is
// handled: units are converted to the canonical system (grams, millimeters),
// missing descriptive fields get their sentinel defaults, and records without
// a usable SKU are dropped and tallied rather than failing the batch.
package normalize

import (
	"github.com/agentstation/utc"

	"github.com/skubridge/skubridge/pkg/catalog"
	"github.com/skubridge/skubridge/pkg/errors"
	"github.com/skubridge/skubridge/pkg/logging"
	"github.com/skubridge/skubridge/pkg/platform"
)

// DefaultCategory is the sentinel assigned when a platform reports no
// category.
const DefaultCategory = "Uncategorized"

// Dropped records one raw record that could not produce a candidate, keyed by
// the platform's native identifier for traceability.
type Dropped struct {
	NativeID string
	Reason   string
}

// Result is the outcome of normalizing one platform's raw record list.
type Result struct {
	Platform platform.ID
	Items    []catalog.Item
	Dropped  []Dropped
}

// ErrorCount returns the number of records dropped during normalization.
func (r *Result) ErrorCount() int {
	return len(r.Dropped)
}

// Records converts one platform's raw record list into canonical item
// candidates tagged with that platform. One malformed record never fails the
// batch: records with an empty SKU are dropped and counted, numeric fields
// default to zero, and missing category/brand fall back to their sentinels.
func Records(id platform.ID, records []platform.RawRecord, now utc.Time) *Result {
	result := &Result{Platform: id}

	for _, record := range records {
		if record.SKU == "" {
			nerr := &errors.NormalizationError{
				Platform: id,
				NativeID: record.NativeID,
				Reason:   "empty SKU",
			}
			logging.Warn().
				Str("platform", id.String()).
				Str("native_id", record.NativeID).
				Msg("Dropping record without SKU")
			result.Dropped = append(result.Dropped, Dropped{
				NativeID: record.NativeID,
				Reason:   nerr.Reason,
			})
			continue
		}

		result.Items = append(result.Items, item(id, record, now))
	}

	logging.Debug().
		Str("platform", id.String()).
		Int("candidates", len(result.Items)).
		Int("dropped", len(result.Dropped)).
		Msg("Normalized platform snapshot")

	return result
}

// item builds one canonical candidate from a raw record.
func item(id platform.ID, record platform.RawRecord, now utc.Time) catalog.Item {
	category := record.Category
	if category == "" {
		category = DefaultCategory
	}

	price := record.PriceMinor
	if price < 0 {
		price = 0
	}

	return catalog.Item{
		Key:         record.SKU,
		DisplayName: record.Name,
		Description: record.Description,
		Category:    category,
		Brand:       record.Brand,
		PriceMinor:  price,
		WeightGrams: Grams(record.Weight, record.WeightUnit),
		Dimensions: catalog.Dimensions{
			Length: Millimeters(record.Length, record.DimensionUnit),
			Width:  Millimeters(record.Width, record.DimensionUnit),
			Height: Millimeters(record.Height, record.DimensionUnit),
		},
		Inventory:    inventory(id, record.Inventory),
		Sources:      []platform.ID{id},
		State:        catalog.StatePending,
		LastSyncedAt: now,
	}
}

// inventory scopes the platform's location identifiers by platform so that
// location keys from different platforms can never collide, and clamps
// negative quantities to zero.
func inventory(id platform.ID, raw map[string]int) map[string]int {
	out := make(map[string]int, len(raw))
	for loc, qty := range raw {
		if qty < 0 {
			qty = 0
		}
		out[LocationKey(id, loc)] = qty
	}
	return out
}

// LocationKey returns the platform-scoped location identifier under which a
// quantity is tracked canonically.
func LocationKey(id platform.ID, location string) string {
	return id.String() + ":" + location
}
