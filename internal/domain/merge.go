package domain

import (
	"sort"
	"strings"
)

// MergeResults folds online results into local ones. Local entries keep
// priority: an online object whose name matches a local one
// (case-insensitive) is dropped, non-duplicates are appended, and the
// merged set is re-sorted by score descending (stable, so local order
// survives among equals).
//
// Dedup is intentionally by name only, not (type, name). Two distinct
// objects sharing a name across types will merge; callers rely on this
// quirk, so it stays.
func MergeResults(local, online []SearchableObject) []SearchableObject {
	merged := make([]SearchableObject, 0, len(local)+len(online))
	seen := make(map[string]bool, len(local)+len(online))

	for _, o := range local {
		merged = append(merged, o)
		seen[strings.ToLower(o.Name)] = true
	}
	for _, o := range online {
		key := strings.ToLower(o.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, o)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	return merged
}
