// Package skubridge keeps one canonical product catalog consistent across
// independent external platforms. Each reconciliation cycle fetches every
// platform's snapshot, normalizes and merges the records by SKU, pushes
// missing items back out, persists the canonical set atomically, and publishes
// it for readers. Cycles run on demand or on a fixed interval, never
// concurrently.
package skubridge

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skubridge/skubridge/pkg/analytics"
	"github.com/skubridge/skubridge/pkg/catalog"
	"github.com/skubridge/skubridge/pkg/dispatch"
	pkgerrors "github.com/skubridge/skubridge/pkg/errors"
	"github.com/skubridge/skubridge/pkg/logging"
	"github.com/skubridge/skubridge/pkg/platform"
	"github.com/skubridge/skubridge/pkg/store"
)

// Engine is the reconciliation engine. It is the only entry point surrounding
// code (web routes, CLIs, GUIs) should call.
type Engine interface {
	// RunOnce runs a single reconciliation cycle synchronously. If a cycle is
	// already in flight it returns ErrCycleRunning immediately; the call is
	// skipped, never queued.
	RunOnce(ctx context.Context) (*Result, error)

	// Start begins the recurring background loop with the given interval.
	Start(interval time.Duration) error

	// Stop halts the background loop, letting an in-flight cycle finish.
	Stop() error

	// LastResult returns the most recent cycle result, or nil before the
	// first cycle.
	LastResult() *Result

	// Snapshot returns a deep copy of the last published canonical set.
	Snapshot() catalog.Set

	// LowStockAlerts reports items at or below the threshold, from the last
	// published snapshot.
	LowStockAlerts(threshold int) []analytics.Alert

	// CategoryBreakdown rolls the last published snapshot up by category.
	CategoryBreakdown() map[string]analytics.CategoryStats

	// TopItemsByValue ranks the last published snapshot by inventory value.
	TopItemsByValue(limit int) []analytics.ItemValue

	// TotalInventoryValue totals the last published snapshot's value in
	// minor currency units.
	TotalInventoryValue() int64

	// OnItemCreated registers a callback for items entering the canonical set
	OnItemCreated(ItemCreatedHook)

	// OnItemUpdated registers a callback for canonical items that changed
	OnItemUpdated(ItemUpdatedHook)

	// OnCycleCompleted registers a callback fired after each published cycle
	OnCycleCompleted(CycleCompletedHook)
}

// engine is the internal implementation of the Engine interface.
type engine struct {
	config     *config
	adapters   platform.Adapters
	store      *store.Store
	dispatcher *dispatch.Dispatcher

	// running is the run guard: at most one cycle at a time, whether
	// triggered by the scheduler or on demand.
	running atomic.Bool

	// mu guards the published snapshot and last result. A cycle owns the set
	// it is building; readers only ever see the last published one.
	mu         sync.RWMutex
	snapshot   catalog.Set
	lastResult *Result

	// loopMu guards the background loop state.
	loopMu   sync.Mutex
	ticker   *time.Ticker
	stopCh   chan struct{}
	loopDone chan struct{}

	hooks *hooks
}

// New creates an Engine with the given options and loads the persisted
// canonical snapshot, if any, as its starting state.
func New(opts ...Option) (Engine, error) {
	e := &engine{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	if err := e.options(opts...); err != nil {
		return nil, err
	}

	if len(e.config.adapters) == 0 {
		return nil, &pkgerrors.ConfigError{
			Component: "engine",
			Message:   "at least one platform adapter is required",
		}
	}
	e.adapters = e.config.adapters
	e.dispatcher = dispatch.New(e.adapters)

	if e.config.store != nil {
		e.store = e.config.store
	} else {
		e.store = store.New(e.config.storePath)
	}

	snapshot, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	e.snapshot = snapshot

	logging.Info().
		Int("items", len(snapshot)).
		Str("store", e.store.Path()).
		Msg("Engine initialized")

	return e, nil
}

// RunOnce runs one cycle under the run guard.
func (e *engine) RunOnce(ctx context.Context) (*Result, error) {
	if !e.running.CompareAndSwap(false, true) {
		logging.Debug().Msg("Cycle already running, trigger skipped")
		return nil, pkgerrors.ErrCycleRunning
	}
	defer e.running.Store(false)

	if ctx == nil {
		ctx = context.Background()
	}
	return e.cycle(ctx), nil
}

// Start begins the recurring loop. Ticks that fire while a cycle is still
// running are skipped by the run guard, so sustained slowness can never build
// a backlog.
func (e *engine) Start(interval time.Duration) error {
	if interval <= 0 {
		return pkgerrors.ErrInvalidInterval
	}

	e.loopMu.Lock()
	defer e.loopMu.Unlock()

	if e.stopCh != nil {
		return pkgerrors.ErrSchedulerRunning
	}

	e.ticker = time.NewTicker(interval)
	e.stopCh = make(chan struct{})
	e.loopDone = make(chan struct{})

	go e.loop(e.ticker, e.stopCh, e.loopDone)

	logging.Info().Dur("interval", interval).Msg("Scheduler started")
	return nil
}

// loop drives scheduled cycles until stopped. Cycles run synchronously inside
// the loop, so the loop only ever exits between cycles; Stop relies on that
// to let an in-flight cycle finish.
func (e *engine) loop(ticker *time.Ticker, stopCh, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ticker.C:
			if _, err := e.RunOnce(context.Background()); err != nil {
				if errors.Is(err, pkgerrors.ErrCycleRunning) {
					logging.Debug().Msg("Scheduled tick skipped, cycle in flight")
				} else {
					logging.Error().Err(err).Msg("Scheduled cycle failed")
				}
			}
		case <-stopCh:
			return
		}
	}
}

// Stop halts the recurring loop cooperatively: the current cycle, if any,
// runs to completion before Stop returns.
func (e *engine) Stop() error {
	e.loopMu.Lock()
	if e.stopCh == nil {
		e.loopMu.Unlock()
		return pkgerrors.ErrSchedulerStopped
	}

	e.ticker.Stop()
	close(e.stopCh)
	done := e.loopDone
	e.ticker = nil
	e.stopCh = nil
	e.loopDone = nil
	e.loopMu.Unlock()

	<-done

	logging.Info().Msg("Scheduler stopped")
	return nil
}

// LastResult returns the most recent cycle result.
func (e *engine) LastResult() *Result {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastResult
}

// Snapshot returns a deep copy of the last published canonical set.
func (e *engine) Snapshot() catalog.Set {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot.Copy()
}

// published returns the published set itself for read-only use. Published
// sets are never mutated again, so analytics can read them without copying.
func (e *engine) published() catalog.Set {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// LowStockAlerts reports items at or below the threshold.
func (e *engine) LowStockAlerts(threshold int) []analytics.Alert {
	return analytics.LowStockAlerts(e.published(), threshold)
}

// CategoryBreakdown rolls the catalog up by category.
func (e *engine) CategoryBreakdown() map[string]analytics.CategoryStats {
	return analytics.CategoryBreakdown(e.published())
}

// TopItemsByValue ranks items by inventory value.
func (e *engine) TopItemsByValue(limit int) []analytics.ItemValue {
	return analytics.TopItemsByValue(e.published(), limit)
}

// TotalInventoryValue totals the catalog's inventory value.
func (e *engine) TotalInventoryValue() int64 {
	return analytics.TotalInventoryValue(e.published())
}
