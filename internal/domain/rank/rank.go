// Package rank holds the ranking step shared by the partner and post
// pipelines: stable descending sort by score, then truncation to a fixed
// bound. Stability matters — candidates with equal scores keep the order
// the storage collaborator returned them in.
package rank

import "sort"

// Scored pairs a candidate with its computed score.
type Scored[T any] struct {
	Item  T
	Score int
}

// Top sorts scored candidates descending by score with a stable sort and
// truncates to at most limit entries. limit <= 0 means no truncation.
// The input slice is sorted in place.
func Top[T any](items []Scored[T], limit int) []Scored[T] {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
