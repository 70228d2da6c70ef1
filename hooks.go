package skubridge

import (
	"reflect"
	"sync"

	"github.com/skubridge/skubridge/pkg/catalog"
)

// Hook function types for catalog events
type (
	// ItemCreatedHook is called when an item enters the canonical set
	ItemCreatedHook func(item catalog.Item)

	// ItemUpdatedHook is called when a canonical item changes
	ItemUpdatedHook func(old, new catalog.Item)

	// CycleCompletedHook is called after a cycle publishes its snapshot
	CycleCompletedHook func(result *Result)
)

// hooks manages event callbacks for catalog changes
type hooks struct {
	mu               sync.RWMutex
	onItemCreated    []ItemCreatedHook
	onItemUpdated    []ItemUpdatedHook
	onCycleCompleted []CycleCompletedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnItemCreated registers a callback for items entering the canonical set
func (e *engine) OnItemCreated(fn ItemCreatedHook) {
	e.hooks.mu.Lock()
	defer e.hooks.mu.Unlock()
	e.hooks.onItemCreated = append(e.hooks.onItemCreated, fn)
}

// OnItemUpdated registers a callback for canonical items that changed
func (e *engine) OnItemUpdated(fn ItemUpdatedHook) {
	e.hooks.mu.Lock()
	defer e.hooks.mu.Unlock()
	e.hooks.onItemUpdated = append(e.hooks.onItemUpdated, fn)
}

// OnCycleCompleted registers a callback fired after each published cycle
func (e *engine) OnCycleCompleted(fn CycleCompletedHook) {
	e.hooks.mu.Lock()
	defer e.hooks.mu.Unlock()
	e.hooks.onCycleCompleted = append(e.hooks.onCycleCompleted, fn)
}

// triggerCycle compares the previous and newly published snapshots and fires
// the appropriate callbacks. Hooks run synchronously after publication.
func (h *hooks) triggerCycle(previous, current catalog.Set, result *Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.onItemCreated) > 0 || len(h.onItemUpdated) > 0 {
		for _, key := range current.Keys() {
			item := current[key]
			old, existed := previous[key]
			if !existed {
				for _, fn := range h.onItemCreated {
					fn(item)
				}
				continue
			}
			if !reflect.DeepEqual(old, item) {
				for _, fn := range h.onItemUpdated {
					fn(old, item)
				}
			}
		}
	}

	for _, fn := range h.onCycleCompleted {
		fn(result)
	}
}
