// Package memory provides an in-memory platform adapter. It backs the CLI's
// demo mode and the engine's tests: records can be seeded directly, pushes
// are stored with a generated record ID, and fetch/push failures can be
// injected to exercise degraded cycles.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/skubridge/skubridge/pkg/errors"
	"github.com/skubridge/skubridge/pkg/platform"
)

// Adapter is an in-memory implementation of platform.Adapter.
type Adapter struct {
	id platform.ID

	mu       sync.Mutex
	records  []platform.RawRecord
	pushed   map[string]string // SKU -> record ID
	fetchErr error
	pushErr  map[string]error // SKU -> injected failure
}

// Compile-time interface check to ensure proper implementation.
var _ platform.Adapter = (*Adapter)(nil)

// New creates an empty in-memory adapter for the given platform ID.
func New(id platform.ID) *Adapter {
	return &Adapter{
		id:      id,
		pushed:  make(map[string]string),
		pushErr: make(map[string]error),
	}
}

// ID returns the platform this adapter serves.
func (a *Adapter) ID() platform.ID {
	return a.id
}

// Seed replaces the adapter's record set.
func (a *Adapter) Seed(records ...platform.RawRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append([]platform.RawRecord(nil), records...)
}

// FailFetch makes every subsequent FetchAll fail with the given error, or
// succeed again when err is nil.
func (a *Adapter) FailFetch(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fetchErr = err
}

// FailPush makes pushes for the given SKU fail with the given error.
func (a *Adapter) FailPush(sku string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pushErr[sku] = err
}

// FetchAll returns the seeded records, or the injected failure.
func (a *Adapter) FetchAll(ctx context.Context) ([]platform.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.fetchErr != nil {
		return nil, a.fetchErr
	}
	return append([]platform.RawRecord(nil), a.records...), nil
}

// CreateOrUpdate stores the pushed item, reusing the record ID when the SKU
// was pushed before so repeated pushes update rather than duplicate.
func (a *Adapter) CreateOrUpdate(ctx context.Context, item platform.PushItem) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if item.SKU == "" {
		return "", errors.ErrInvalidInput
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.pushErr[item.SKU]; err != nil {
		return "", err
	}

	recordID, exists := a.pushed[item.SKU]
	if !exists {
		recordID = uuid.NewString()
		a.pushed[item.SKU] = recordID
	}

	// Reflect the push in the record set so the next fetch reports it.
	record := platform.RawRecord{
		NativeID:      recordID,
		SKU:           item.SKU,
		Name:          item.Name,
		Description:   item.Description,
		Category:      item.Category,
		Brand:         item.Brand,
		PriceMinor:    item.PriceMinor,
		Weight:        item.WeightGrams,
		WeightUnit:    "g",
		Length:        item.LengthMM,
		Width:         item.WidthMM,
		Height:        item.HeightMM,
		DimensionUnit: "mm",
		Inventory:     map[string]int{"default": item.TotalOnHand},
	}

	replaced := false
	for i, existing := range a.records {
		if existing.SKU == item.SKU {
			a.records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		a.records = append(a.records, record)
	}

	return recordID, nil
}

// RecordID returns the record ID assigned to a pushed SKU, if any.
func (a *Adapter) RecordID(sku string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, ok := a.pushed[sku]
	return id, ok
}

// PushCount returns how many distinct SKUs have been pushed.
func (a *Adapter) PushCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pushed)
}
