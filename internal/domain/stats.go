package domain

import "time"

// SearchStats is the read-only breakdown recomputed whenever results
// change.
type SearchStats struct {
	TotalResults int
	ByType       map[ObjectType]int
	BySource     map[SourceID]int
	LocalMillis  int64
	OnlineMillis int64
}

// ComputeStats builds the stats view for a result set and the elapsed
// durations of the two search phases.
func ComputeStats(results []SearchableObject, localElapsed, onlineElapsed time.Duration) SearchStats {
	stats := SearchStats{
		TotalResults: len(results),
		ByType:       make(map[ObjectType]int),
		BySource:     make(map[SourceID]int),
		LocalMillis:  localElapsed.Milliseconds(),
		OnlineMillis: onlineElapsed.Milliseconds(),
	}
	for i := range results {
		stats.ByType[results[i].Type]++
		stats.BySource[results[i].Source]++
	}
	return stats
}
