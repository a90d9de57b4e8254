package orders

import (
	"strings"
	"time"
)

// The filters below are pure in-memory predicates over an already-extracted
// snapshot. They never touch the UI; callers re-extract when they want fresh
// state.

// FilterByVenue returns orders whose venue contains the given text.
func FilterByVenue(list []HistoryOrder, venue string) []HistoryOrder {
	return filter(list, func(o HistoryOrder) bool {
		return strings.Contains(o.Venue, venue)
	})
}

// FilterBySymbol returns orders whose symbol contains the given text.
func FilterBySymbol(list []HistoryOrder, symbol string) []HistoryOrder {
	return filter(list, func(o HistoryOrder) bool {
		return strings.Contains(o.Symbol, symbol)
	})
}

// FilterBySide returns orders on the given side.
func FilterBySide(list []HistoryOrder, side Side) []HistoryOrder {
	return filter(list, func(o HistoryOrder) bool {
		return strings.Contains(o.Side, string(side))
	})
}

// FilterByType returns orders whose algorithm type contains the given text.
func FilterByType(list []HistoryOrder, algoType string) []HistoryOrder {
	return filter(list, func(o HistoryOrder) bool {
		return strings.Contains(o.Type, algoType)
	})
}

// FilterByStatus returns orders whose status contains the given text.
func FilterByStatus(list []HistoryOrder, status string) []HistoryOrder {
	return filter(list, func(o HistoryOrder) bool {
		return strings.Contains(o.Status, status)
	})
}

// CountByStatus returns the number of orders whose status contains the text.
func CountByStatus(list []HistoryOrder, status string) int {
	return len(FilterByStatus(list, status))
}

// FilterByDateRange returns orders whose DateTime parses and falls within
// [start, end]. Rows with unparseable dates are excluded rather than guessed.
func FilterByDateRange(list []HistoryOrder, start, end time.Time) []HistoryOrder {
	return filter(list, func(o HistoryOrder) bool {
		t, ok := parseRowTime(o.DateTime)
		if !ok {
			return false
		}
		return !t.Before(start) && !t.After(end)
	})
}

// FilterWithMetadata returns orders carrying the named metadata badge.
func FilterWithMetadata(list []HistoryOrder, label string) []HistoryOrder {
	return filter(list, func(o HistoryOrder) bool {
		return o.Metadata.Has(label)
	})
}

// Types returns the distinct algorithm type labels in the snapshot, in first
// occurrence order.
func Types(list []HistoryOrder) []string {
	seen := make(map[string]bool, len(list))
	var out []string
	for _, o := range list {
		if !seen[o.Type] {
			seen[o.Type] = true
			out = append(out, o.Type)
		}
	}
	return out
}

var rowTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseRowTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range rowTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func filter(list []HistoryOrder, keep func(HistoryOrder) bool) []HistoryOrder {
	var out []HistoryOrder
	for _, o := range list {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}
