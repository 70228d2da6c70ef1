// Package dispatch pushes canonical items back out to the platforms that are
// missing them. Every (item, platform) push is independent: pushes run
// concurrently, one failure never aborts the batch, and a failed item simply
// stays canonical and becomes eligible again on the next cycle. There is no
// inline retry; periodicity is the retry mechanism.
package dispatch

import (
	"context"
	"sort"
	"sync"

	"github.com/skubridge/skubridge/pkg/catalog"
	"github.com/skubridge/skubridge/pkg/errors"
	"github.com/skubridge/skubridge/pkg/logging"
	"github.com/skubridge/skubridge/pkg/platform"
)

// Report collects per-item, per-platform push outcomes for one cycle.
type Report struct {
	// Pushed counts successful pushes per platform.
	Pushed map[platform.ID]int

	// Failed counts failed pushes per platform.
	Failed map[platform.ID]int

	// Failures maps item key to the reason its push failed. When pushes to
	// several platforms fail for one item, reasons are joined.
	Failures map[string]string
}

// HasFailures reports whether any push failed.
func (r *Report) HasFailures() bool {
	return len(r.Failures) > 0
}

// Dispatcher pushes pending canonical items to the platforms lacking them.
type Dispatcher struct {
	adapters platform.Adapters
}

// New creates a Dispatcher over the given adapters.
func New(adapters platform.Adapters) *Dispatcher {
	return &Dispatcher{adapters: adapters}
}

// pushResult is one (item, platform) push outcome.
type pushResult struct {
	key      string
	platform platform.ID
	err      error
}

// Push attempts to create or update every Pending item on each platform that
// does not yet hold it. The set is owned by the running cycle; Push mutates
// item states in place: success marks the platform as a source (and the item
// Synced once every platform holds it), failure marks the item Error and
// records the reason in the report.
func (d *Dispatcher) Push(ctx context.Context, items catalog.Set) *Report {
	report := &Report{
		Pushed:   make(map[platform.ID]int),
		Failed:   make(map[platform.ID]int),
		Failures: make(map[string]string),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var results []pushResult

	for _, key := range items.Keys() {
		item := items[key]
		if item.State != catalog.StatePending {
			continue
		}

		for _, adapter := range d.adapters {
			if item.HasSource(adapter.ID()) {
				continue
			}

			wg.Add(1)
			go func(adapter platform.Adapter, item catalog.Item) {
				defer wg.Done()

				recordID, err := adapter.CreateOrUpdate(ctx, item.PushItem())
				if err != nil {
					logging.Warn().
						Err(err).
						Str("platform", adapter.ID().String()).
						Str("sku", item.Key).
						Msg("Push failed")
				} else {
					logging.Debug().
						Str("platform", adapter.ID().String()).
						Str("sku", item.Key).
						Str("record_id", recordID).
						Msg("Pushed item")
				}

				mu.Lock()
				results = append(results, pushResult{
					key:      item.Key,
					platform: adapter.ID(),
					err:      errors.WrapPush(adapter.ID(), item.Key, err),
				})
				mu.Unlock()
			}(adapter, item)
		}
	}

	wg.Wait()

	// Apply outcomes serially and in a deterministic order; the goroutines
	// above never touch the set.
	sort.Slice(results, func(i, j int) bool {
		if results[i].key != results[j].key {
			return results[i].key < results[j].key
		}
		return results[i].platform < results[j].platform
	})
	for _, res := range results {
		item := items[res.key]
		if res.err != nil {
			item.State = catalog.StateError
			report.Failed[res.platform]++
			if existing, ok := report.Failures[res.key]; ok {
				report.Failures[res.key] = existing + "; " + res.err.Error()
			} else {
				report.Failures[res.key] = res.err.Error()
			}
		} else {
			item.AddSource(res.platform)
			report.Pushed[res.platform]++
		}
		items[res.key] = item
	}

	// An item is Synced only once every platform holds it and nothing failed.
	for _, res := range results {
		item := items[res.key]
		if item.State == catalog.StateError {
			continue
		}
		if len(item.Sources) == len(d.adapters) {
			item.State = catalog.StateSynced
			items[res.key] = item
		}
	}

	return report
}
