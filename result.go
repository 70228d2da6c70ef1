package skubridge

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/skubridge/skubridge/pkg/platform"
	"github.com/skubridge/skubridge/pkg/reconcile"
)

// PlatformResult summarizes one platform's contribution to a cycle.
type PlatformResult struct {
	Platform platform.ID

	// Created and Updated count candidates this platform contributed that
	// were new to, or already present in, the canonical set.
	Created int
	Updated int

	// Errored counts this platform's normalization drops plus failed pushes.
	Errored int

	// FetchError is set when the platform's snapshot fetch failed; the
	// platform contributed no candidates this cycle.
	FetchError string
}

// Result is one reconciliation cycle's outcome. Produced fresh each cycle and
// immutable once published; only the most recent result is retained.
type Result struct {
	StartedAt   utc.Time
	CompletedAt utc.Time
	Duration    time.Duration

	// ItemCount is the size of the canonical set after the cycle.
	ItemCount int

	// Platforms holds per-platform tallies, keyed by platform ID.
	Platforms map[platform.ID]*PlatformResult

	// Duplicates lists in-platform duplicate SKU warnings.
	Duplicates []reconcile.Duplicate

	// StaleKeys lists items retained without confirmation from any platform.
	StaleKeys []string

	// PushFailures maps item key to the reason its push failed.
	PushFailures map[string]string

	// StorageFailure is set when the snapshot could not be saved. The
	// in-memory snapshot is still published, but the durable copy is stale.
	StorageFailure string
}

// HasErrors reports whether the cycle recorded any failure.
func (r *Result) HasErrors() bool {
	if len(r.PushFailures) > 0 || r.StorageFailure != "" {
		return true
	}
	for _, pr := range r.Platforms {
		if pr.Errored > 0 || pr.FetchError != "" {
			return true
		}
	}
	return false
}

// Summary returns a human-readable one-line summary of the cycle.
func (r *Result) Summary() string {
	var parts []string
	for _, id := range sortedPlatforms(r.Platforms) {
		pr := r.Platforms[id]
		if pr.FetchError != "" {
			parts = append(parts, fmt.Sprintf("%s: fetch failed", id))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %d created, %d updated, %d errored",
			id, pr.Created, pr.Updated, pr.Errored))
	}

	summary := fmt.Sprintf("%d items in %s (%s)",
		r.ItemCount, r.Duration.Round(time.Millisecond), strings.Join(parts, "; "))

	if len(r.StaleKeys) > 0 {
		summary += fmt.Sprintf(", %d stale", len(r.StaleKeys))
	}
	if r.StorageFailure != "" {
		summary += ", snapshot save FAILED"
	}
	return summary
}

// sortedPlatforms returns platform IDs in lexicographic order for
// reproducible report output.
func sortedPlatforms(platforms map[platform.ID]*PlatformResult) []platform.ID {
	ids := make([]platform.ID, 0, len(platforms))
	for id := range platforms {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
