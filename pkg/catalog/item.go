// Package catalog defines the canonical product representation shared by the
// reconciliation engine: one Item per SKU, merged from every platform that
// reports it, plus the Set container the engine publishes after each cycle.
package catalog

import (
	"slices"

	"github.com/agentstation/utc"

	"github.com/skubridge/skubridge/pkg/platform"
)

// SyncState describes where an item stands relative to the platforms.
type SyncState string

const (
	// StateSynced means every platform holds the item.
	StateSynced SyncState = "synced"

	// StatePending means at least one platform is missing the item and a
	// push is due.
	StatePending SyncState = "pending"

	// StateError means the last push attempt for the item failed. The item
	// stays in the canonical set and is eligible again next cycle.
	StateError SyncState = "error"
)

// Dimensions are canonical-unit (millimeter) product dimensions.
type Dimensions struct {
	Length float64 `yaml:"length"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Item is the canonical representation of one product, keyed by SKU.
type Item struct {
	// Key is the business identifier (SKU). Never empty, immutable once
	// assigned.
	Key string `yaml:"key"`

	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description,omitempty"`
	Category    string `yaml:"category"`
	Brand       string `yaml:"brand,omitempty"`

	// PriceMinor is the price in the smallest currency unit. Integer to
	// avoid floating point drift.
	PriceMinor int64 `yaml:"price_minor"`

	// WeightGrams is the canonical-unit weight.
	WeightGrams float64 `yaml:"weight_grams,omitempty"`

	Dimensions Dimensions `yaml:"dimensions,omitempty"`

	// Inventory maps platform-scoped location identifiers to quantities.
	// Locations from different platforms are never summed together.
	Inventory map[string]int `yaml:"inventory"`

	// Sources is the sorted set of platforms that reported this item.
	Sources []platform.ID `yaml:"sources"`

	State SyncState `yaml:"state"`

	// LastSyncedAt is when a reconciliation cycle last touched this item.
	LastSyncedAt utc.Time `yaml:"last_synced_at"`
}

// HasSource reports whether the given platform reported this item.
func (i *Item) HasSource(id platform.ID) bool {
	return slices.Contains(i.Sources, id)
}

// AddSource records a platform as holding this item, keeping Sources sorted
// and duplicate-free.
func (i *Item) AddSource(id platform.ID) {
	if i.HasSource(id) {
		return
	}
	i.Sources = append(i.Sources, id)
	slices.Sort(i.Sources)
}

// TotalQuantity returns the sum of quantities across every tracked location.
func (i *Item) TotalQuantity() int {
	total := 0
	for _, qty := range i.Inventory {
		total += qty
	}
	return total
}

// ValueMinor returns the inventory value of this item in minor currency
// units.
func (i *Item) ValueMinor() int64 {
	return i.PriceMinor * int64(i.TotalQuantity())
}

// PushItem projects the canonical item into the platform-facing shape.
func (i *Item) PushItem() platform.PushItem {
	return platform.PushItem{
		SKU:         i.Key,
		Name:        i.DisplayName,
		Description: i.Description,
		Category:    i.Category,
		Brand:       i.Brand,
		PriceMinor:  i.PriceMinor,
		WeightGrams: i.WeightGrams,
		LengthMM:    i.Dimensions.Length,
		WidthMM:     i.Dimensions.Width,
		HeightMM:    i.Dimensions.Height,
		TotalOnHand: i.TotalQuantity(),
	}
}

// Copy returns a deep copy of the item.
func (i Item) Copy() Item {
	out := i
	if i.Inventory != nil {
		out.Inventory = make(map[string]int, len(i.Inventory))
		for loc, qty := range i.Inventory {
			out.Inventory[loc] = qty
		}
	}
	out.Sources = slices.Clone(i.Sources)
	return out
}
