package skubridge

import (
	"context"
	"sync"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	pkgerrors "github.com/skubridge/skubridge/pkg/errors"
	"github.com/skubridge/skubridge/pkg/logging"
	"github.com/skubridge/skubridge/pkg/normalize"
	"github.com/skubridge/skubridge/pkg/platform"
	"github.com/skubridge/skubridge/pkg/reconcile"
)

// fetchOutcome is one platform's fetch result.
type fetchOutcome struct {
	records []platform.RawRecord
	err     error
}

// cycle runs one complete fetch → normalize → merge → push → persist →
// publish pass. Nothing short of a storage failure aborts it, and even then
// the in-memory result is published; all failures land in the Result.
func (e *engine) cycle(ctx context.Context) *Result {
	start := utc.Now()

	// Tag every log line of this cycle with its ID.
	ctx = logging.WithCycleID(ctx, uuid.NewString())
	logger := logging.FromContext(ctx)
	logger.Info().Int("platforms", len(e.adapters)).Msg("Reconciliation cycle started")

	result := &Result{
		StartedAt: start,
		Platforms: make(map[platform.ID]*PlatformResult, len(e.adapters)),
	}
	for _, id := range e.adapters.IDs() {
		result.Platforms[id] = &PlatformResult{Platform: id}
	}

	// Fetch every platform concurrently; there is no ordering dependency
	// between fetches. A failed fetch degrades that platform to an empty
	// contribution for this cycle rather than aborting it.
	outcomes := e.fetch(ctx)

	// Normalize in adapter order so merge precedence stays deterministic no
	// matter which fetch finished first.
	batches := make([]reconcile.Batch, 0, len(e.adapters))
	for _, adapter := range e.adapters {
		id := adapter.ID()
		outcome := outcomes[id]
		pr := result.Platforms[id]

		if outcome.err != nil {
			pr.FetchError = outcome.err.Error()
			logger.Warn().Err(outcome.err).Str("platform", id.String()).
				Msg("Fetch failed, platform contributes nothing this cycle")
			batches = append(batches, reconcile.Batch{Platform: id})
			continue
		}

		normalized := normalize.Records(id, outcome.records, start)
		pr.Errored += normalized.ErrorCount()
		batches = append(batches, reconcile.Batch{
			Platform: id,
			Items:    normalized.Items,
		})
	}

	// Merge against the last published snapshot. Merge never mutates the
	// previous set, so reading it without a copy is safe.
	merged := reconcile.Merge(e.published(), batches, e.adapters.IDs(), start)
	for id, tally := range merged.Tallies {
		if pr := result.Platforms[id]; pr != nil {
			pr.Created = tally.Created
			pr.Updated = tally.Updated
		}
	}
	result.Duplicates = merged.Duplicates
	result.StaleKeys = merged.StaleKeys

	// Push pending items out to the platforms missing them.
	report := e.dispatcher.Push(ctx, merged.Canonical)
	result.PushFailures = report.Failures
	for id, failed := range report.Failed {
		if pr := result.Platforms[id]; pr != nil {
			pr.Errored += failed
		}
	}

	// Persist. A save failure is recorded, not fatal: the in-memory snapshot
	// is still published so readers and the next cycle keep working.
	if err := e.store.Save(merged.Canonical); err != nil {
		result.StorageFailure = err.Error()
		logger.Error().Err(err).Msg("Snapshot save failed, durable copy is stale")
	}

	result.ItemCount = len(merged.Canonical)
	result.CompletedAt = utc.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)

	// Publish atomically: readers either see the previous snapshot or this
	// one, never the set mid-build.
	e.mu.Lock()
	previous := e.snapshot
	e.snapshot = merged.Canonical
	e.lastResult = result
	e.mu.Unlock()

	e.hooks.triggerCycle(previous, merged.Canonical, result)

	logger.Info().
		Int("items", result.ItemCount).
		Int("stale", len(result.StaleKeys)).
		Int("push_failures", len(result.PushFailures)).
		Dur("duration", result.Duration).
		Msg("Reconciliation cycle completed")

	return result
}

// fetch retrieves every platform's snapshot concurrently.
func (e *engine) fetch(ctx context.Context) map[platform.ID]*fetchOutcome {
	logger := logging.FromContext(ctx)

	var wg sync.WaitGroup
	var mu sync.Mutex
	outcomes := make(map[platform.ID]*fetchOutcome, len(e.adapters))

	for _, adapter := range e.adapters {
		wg.Add(1)
		go func(adapter platform.Adapter) {
			defer wg.Done()

			logger.Debug().Str("platform", adapter.ID().String()).Msg("Fetching snapshot")
			records, err := adapter.FetchAll(ctx)

			mu.Lock()
			outcomes[adapter.ID()] = &fetchOutcome{
				records: records,
				err:     pkgerrors.WrapFetch(adapter.ID(), err),
			}
			mu.Unlock()
		}(adapter)
	}

	wg.Wait()
	return outcomes
}
