// Package analytics derives read-only reports from a published canonical
// snapshot: low-stock alerts, category rollups, and inventory valuation. All
// functions are pure over the set they are given and never mutate it, so they
// are safe to run concurrently with a reconciliation cycle as long as callers
// hand them the last published snapshot rather than one being built.
package analytics

import (
	"sort"

	"github.com/skubridge/skubridge/pkg/catalog"
)

// Severity grades a low-stock alert.
type Severity string

const (
	// SeverityCritical means the item is completely out of stock.
	SeverityCritical Severity = "critical"

	// SeverityWarning means the item is at or below the alert threshold.
	SeverityWarning Severity = "warning"
)

// Alert is one low-stock finding. Derived, never persisted.
type Alert struct {
	Key           string
	DisplayName   string
	TotalQuantity int
	ByLocation    map[string]int
	Severity      Severity
}

// LowStockAlerts returns an alert for every item whose total quantity is at
// or below the threshold: critical at zero, warning otherwise. Alerts are
// sorted ascending by quantity, then by key for a stable order.
func LowStockAlerts(items catalog.Set, threshold int) []Alert {
	var alerts []Alert
	for _, item := range items {
		total := item.TotalQuantity()
		if total > threshold {
			continue
		}

		severity := SeverityWarning
		if total == 0 {
			severity = SeverityCritical
		}

		byLocation := make(map[string]int, len(item.Inventory))
		for loc, qty := range item.Inventory {
			byLocation[loc] = qty
		}

		alerts = append(alerts, Alert{
			Key:           item.Key,
			DisplayName:   item.DisplayName,
			TotalQuantity: total,
			ByLocation:    byLocation,
			Severity:      severity,
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].TotalQuantity != alerts[j].TotalQuantity {
			return alerts[i].TotalQuantity < alerts[j].TotalQuantity
		}
		return alerts[i].Key < alerts[j].Key
	})

	return alerts
}

// CategoryStats aggregates one category's share of the catalog.
type CategoryStats struct {
	Items      int
	Units      int
	ValueMinor int64
}

// CategoryBreakdown rolls the catalog up by category.
func CategoryBreakdown(items catalog.Set) map[string]CategoryStats {
	breakdown := make(map[string]CategoryStats)
	for _, item := range items {
		stats := breakdown[item.Category]
		stats.Items++
		stats.Units += item.TotalQuantity()
		stats.ValueMinor += item.ValueMinor()
		breakdown[item.Category] = stats
	}
	return breakdown
}

// ItemValue pairs an item with its inventory value.
type ItemValue struct {
	Key         string
	DisplayName string
	Units       int
	ValueMinor  int64
}

// TopItemsByValue returns up to limit items ranked by inventory value,
// descending, with key order breaking ties.
func TopItemsByValue(items catalog.Set, limit int) []ItemValue {
	ranked := make([]ItemValue, 0, len(items))
	for _, item := range items {
		ranked = append(ranked, ItemValue{
			Key:         item.Key,
			DisplayName: item.DisplayName,
			Units:       item.TotalQuantity(),
			ValueMinor:  item.ValueMinor(),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].ValueMinor != ranked[j].ValueMinor {
			return ranked[i].ValueMinor > ranked[j].ValueMinor
		}
		return ranked[i].Key < ranked[j].Key
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TotalInventoryValue returns the catalog-wide inventory value in minor
// currency units.
func TotalInventoryValue(items catalog.Set) int64 {
	var total int64
	for _, item := range items {
		total += item.ValueMinor()
	}
	return total
}
