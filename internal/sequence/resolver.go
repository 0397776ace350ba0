// Package sequence applies an owner-defined display order to a list of entities.
package sequence

import (
	"slices"
	"time"
)

// Item is an entity that can be placed by a sequence record.
type Item interface {
	// SequenceKey is the id the sequence refers to.
	SequenceKey() string
	// LastUpdated orders items when there is no sequence.
	LastUpdated() time.Time
}

// Resolve returns items arranged by order.
//
// With an empty order the items are sorted by LastUpdated, newest first, keeping the
// input order for equal timestamps. Otherwise the items named by order come first in
// that order, ids in order without a matching item are skipped, and items order does not
// mention follow in their input order. The input slice is not modified.
func Resolve[E Item](items []E, order []string) []E {
	out := make([]E, 0, len(items))
	if len(order) == 0 {
		out = append(out, items...)
		slices.SortStableFunc(out, func(a, b E) int {
			return b.LastUpdated().Compare(a.LastUpdated())
		})
		return out
	}

	byKey := make(map[string]int, len(items))
	for i, item := range items {
		if _, dup := byKey[item.SequenceKey()]; !dup {
			byKey[item.SequenceKey()] = i
		}
	}

	placed := make([]bool, len(items))
	for _, key := range order {
		i, ok := byKey[key]
		if !ok || placed[i] {
			continue
		}
		placed[i] = true
		out = append(out, items[i])
	}
	for i, item := range items {
		if !placed[i] {
			out = append(out, item)
		}
	}
	return out
}
