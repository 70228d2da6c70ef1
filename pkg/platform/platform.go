// Package platform defines the boundary between the reconciliation engine and
// the external commerce platforms it keeps in sync. Each platform is consumed
// through the Adapter interface; the engine never talks to a platform API
// directly.
//
// Example usage:
//
//	adapters := platform.Adapters{
//	    shopAdapter,
//	    warehouseAdapter,
//	}
//	records, err := adapters[0].FetchAll(ctx)
package platform

import (
	"context"
	"slices"
)

// ID identifies one external platform.
type ID string

// String returns the string representation of a platform ID.
func (id ID) String() string {
	return string(id)
}

// RawRecord is one product row exactly as a platform reported it, before any
// normalization. Field units are platform-native; the normalizer converts them
// to canonical units.
type RawRecord struct {
	// NativeID is the platform's own identifier for the record, retained for
	// traceability when the record is dropped.
	NativeID string `yaml:"native_id"`

	// SKU is the business key. A record with an empty SKU cannot enter the
	// canonical catalog.
	SKU string `yaml:"sku"`

	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Category    string `yaml:"category,omitempty"`
	Brand       string `yaml:"brand,omitempty"`

	// PriceMinor is the price in the smallest currency unit.
	PriceMinor int64 `yaml:"price_minor"`

	// Weight and WeightUnit carry the platform-native weight ("g", "kg",
	// "oz", "lb").
	Weight     float64 `yaml:"weight,omitempty"`
	WeightUnit string  `yaml:"weight_unit,omitempty"`

	// Length, Width, Height and DimensionUnit carry platform-native
	// dimensions ("mm", "cm", "in").
	Length        float64 `yaml:"length,omitempty"`
	Width         float64 `yaml:"width,omitempty"`
	Height        float64 `yaml:"height,omitempty"`
	DimensionUnit string  `yaml:"dimension_unit,omitempty"`

	// Inventory maps the platform's location identifiers to quantities.
	Inventory map[string]int `yaml:"inventory,omitempty"`
}

// Adapter is the contract one external platform must satisfy. Implementations
// own their transport, authentication, and per-call timeouts.
type Adapter interface {
	// ID returns the platform this adapter serves.
	ID() ID

	// FetchAll returns the platform's current product snapshot. It returns
	// either the full list or an error, never a partial list alongside one.
	FetchAll(ctx context.Context) ([]RawRecord, error)

	// CreateOrUpdate pushes one canonical item to the platform and returns
	// the platform's record identifier. Calling it for an item already on the
	// platform updates in place rather than duplicating.
	CreateOrUpdate(ctx context.Context, item PushItem) (string, error)
}

// PushItem is the platform-facing projection of a canonical item. It carries
// everything a platform needs to create or update the product on its side.
type PushItem struct {
	SKU         string
	Name        string
	Description string
	Category    string
	Brand       string
	PriceMinor  int64
	WeightGrams float64
	LengthMM    float64
	WidthMM     float64
	HeightMM    float64
	TotalOnHand int
}

// Adapters is an ordered list of platform adapters. Order is significant: it
// fixes merge precedence (later adapters overwrite earlier ones on conflict).
type Adapters []Adapter

// IDs returns the platform IDs in adapter order.
func (a Adapters) IDs() []ID {
	ids := make([]ID, 0, len(a))
	for _, adapter := range a {
		ids = append(ids, adapter.ID())
	}
	return ids
}

// Get returns the adapter for the given platform ID.
func (a Adapters) Get(id ID) (Adapter, bool) {
	for _, adapter := range a {
		if adapter.ID() == id {
			return adapter, true
		}
	}
	return nil, false
}

// Contains reports whether the given platform ID is present.
func (a Adapters) Contains(id ID) bool {
	return slices.ContainsFunc(a, func(adapter Adapter) bool {
		return adapter.ID() == id
	})
}
