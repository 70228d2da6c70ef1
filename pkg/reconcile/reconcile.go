// Package reconcile merges normalized candidates from every platform into the
// canonical item set. Merge precedence is fetch order: when two platforms
// report the same SKU in one cycle, the later-fetched platform's scalar fields
// win. The engine fetches platforms concurrently but always merges in
// configured order, so the tie-break never depends on fetch timing.
package reconcile

import (
	"sort"

	"github.com/agentstation/utc"

	"github.com/skubridge/skubridge/pkg/catalog"
	"github.com/skubridge/skubridge/pkg/logging"
	"github.com/skubridge/skubridge/pkg/platform"
)

// Batch is one platform's normalized candidates for the current cycle. A
// platform whose fetch failed contributes an empty batch.
type Batch struct {
	Platform platform.ID
	Items    []catalog.Item
}

// Tally counts one platform's contribution to a cycle.
type Tally struct {
	Created int
	Updated int
	Errored int
}

// Duplicate records a SKU reported more than once by a single platform in one
// cycle. The last occurrence wins; the duplicate is a warning, not an error.
type Duplicate struct {
	Platform platform.ID
	Key      string
}

// Outcome is the result of merging one cycle's candidates against the
// previous canonical snapshot.
type Outcome struct {
	// Canonical is the new canonical item set.
	Canonical catalog.Set

	// Tallies holds per-platform create/update counts.
	Tallies map[platform.ID]*Tally

	// Duplicates lists in-platform duplicate SKU warnings, ordered by key.
	Duplicates []Duplicate

	// StaleKeys lists SKUs retained from the previous snapshot because no
	// platform confirmed them this cycle, in lexicographic order.
	StaleKeys []string
}

// Merge reconciles the cycle's candidate batches against the previous
// canonical snapshot. Batches must be in fetch-precedence order. The platforms
// list is the full configured set; an item is Synced only when every
// configured platform reported it, otherwise it is Pending and due for a push.
//
// A key present in the previous snapshot but absent from every batch is
// retained unchanged: a transient fetch failure must not delete catalog data.
func Merge(previous catalog.Set, batches []Batch, platforms []platform.ID, now utc.Time) *Outcome {
	outcome := &Outcome{
		Canonical: catalog.NewSet(),
		Tallies:   make(map[platform.ID]*Tally, len(platforms)),
	}
	for _, id := range platforms {
		outcome.Tallies[id] = &Tally{}
	}

	// Group candidates by key, preserving batch precedence order. Within one
	// platform the last occurrence of a key replaces earlier ones.
	grouped := make(map[string][]catalog.Item)
	for _, batch := range batches {
		tally := outcome.Tallies[batch.Platform]
		if tally == nil {
			tally = &Tally{}
			outcome.Tallies[batch.Platform] = tally
		}

		seen := make(map[string]int, len(batch.Items)) // key -> index in grouped[key]
		for _, candidate := range batch.Items {
			if idx, dup := seen[candidate.Key]; dup {
				grouped[candidate.Key][idx] = candidate
				outcome.Duplicates = append(outcome.Duplicates, Duplicate{
					Platform: batch.Platform,
					Key:      candidate.Key,
				})
				logging.Warn().
					Str("platform", batch.Platform.String()).
					Str("sku", candidate.Key).
					Msg("Duplicate SKU within platform snapshot, last occurrence wins")
				continue
			}

			grouped[candidate.Key] = append(grouped[candidate.Key], candidate)
			seen[candidate.Key] = len(grouped[candidate.Key]) - 1

			if _, exists := previous[candidate.Key]; exists {
				tally.Updated++
			} else {
				tally.Created++
			}
		}
	}

	// Merge each key's candidates in precedence order.
	for key, candidates := range grouped {
		merged := candidates[0].Copy()
		for _, next := range candidates[1:] {
			merged = merge(merged, next)
		}

		if len(merged.Sources) == len(platforms) {
			merged.State = catalog.StateSynced
		} else {
			merged.State = catalog.StatePending
		}
		merged.LastSyncedAt = now

		outcome.Canonical[key] = merged
	}

	// Retain previous items no platform confirmed this cycle. Their state is
	// deliberately left as-is; they are only noted as stale.
	for key, item := range previous {
		if _, confirmed := grouped[key]; confirmed {
			continue
		}
		outcome.Canonical[key] = item.Copy()
		outcome.StaleKeys = append(outcome.StaleKeys, key)
	}
	sort.Strings(outcome.StaleKeys)

	sort.Slice(outcome.Duplicates, func(i, j int) bool {
		if outcome.Duplicates[i].Key != outcome.Duplicates[j].Key {
			return outcome.Duplicates[i].Key < outcome.Duplicates[j].Key
		}
		return outcome.Duplicates[i].Platform < outcome.Duplicates[j].Platform
	})

	return outcome
}

// merge folds the next candidate into the accumulated item. Scalar fields are
// last-writer-wins; inventory is a disjoint union of platform-scoped location
// keys (quantities for the same physical location on different platforms stay
// tracked separately, never summed); sources accumulate.
func merge(base, next catalog.Item) catalog.Item {
	out := base

	out.DisplayName = next.DisplayName
	out.Description = next.Description
	out.Category = next.Category
	out.Brand = next.Brand
	out.PriceMinor = next.PriceMinor
	out.WeightGrams = next.WeightGrams
	out.Dimensions = next.Dimensions

	for loc, qty := range next.Inventory {
		if out.Inventory == nil {
			out.Inventory = make(map[string]int, len(next.Inventory))
		}
		out.Inventory[loc] = qty
	}

	for _, src := range next.Sources {
		out.AddSource(src)
	}

	return out
}
