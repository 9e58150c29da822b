package domain

import (
	"sort"
	"strings"
)

// SortOption names a result ordering.
type SortOption string

const (
	SortByRelevance SortOption = "relevance"
	SortByName      SortOption = "name"
	SortByType      SortOption = "type"
	SortByRA        SortOption = "ra"
	SortByMagnitude SortOption = "magnitude"
	SortBySource    SortOption = "source"
)

// SortResults returns results ordered by the given option. Relevance is
// a no-op: it preserves the merge order. Every other option is a total
// order with a secondary comparator on name, applied stably.
func SortResults(results []SearchableObject, by SortOption) []SearchableObject {
	out := make([]SearchableObject, len(results))
	copy(out, results)

	if by == SortByRelevance || by == "" {
		return out
	}

	less := comparator(by)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		switch less(a, b) {
		case -1:
			return true
		case 1:
			return false
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	return out
}

// comparator returns a three-way compare for the sort option.
// Missing RA/magnitude values order last.
func comparator(by SortOption) func(a, b *SearchableObject) int {
	switch by {
	case SortByName:
		return func(a, b *SearchableObject) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case SortByType:
		return func(a, b *SearchableObject) int {
			return strings.Compare(string(a.Type), string(b.Type))
		}
	case SortBySource:
		return func(a, b *SearchableObject) int {
			return strings.Compare(string(a.Source), string(b.Source))
		}
	case SortByRA:
		return func(a, b *SearchableObject) int {
			return compareOptional(a.RA, b.RA)
		}
	case SortByMagnitude:
		return func(a, b *SearchableObject) int {
			return compareOptional(a.Magnitude, b.Magnitude)
		}
	default:
		return func(a, b *SearchableObject) int { return 0 }
	}
}

func compareOptional(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

// ResultGroup is one bucket of a grouped view.
type ResultGroup struct {
	Key     string
	Objects []SearchableObject
}

// GroupResults buckets results by type, or by source when groupBySource
// is set. Groups appear in order of first occurrence, so the view stays
// stable across recomputation.
func GroupResults(results []SearchableObject, groupBySource bool) []ResultGroup {
	order := make([]string, 0, 8)
	buckets := make(map[string][]SearchableObject, 8)

	for _, o := range results {
		key := string(o.Type)
		if groupBySource {
			key = string(o.Source)
		}
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], o)
	}

	groups := make([]ResultGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, ResultGroup{Key: key, Objects: buckets[key]})
	}
	return groups
}
