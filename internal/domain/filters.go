package domain

// SearchFilters narrows a search invocation. Immutable per search:
// the orchestrator replaces the whole value when filters change.
type SearchFilters struct {
	// Types restricts results to the given object types.
	// Empty means all types pass.
	Types map[ObjectType]bool

	// IncludeTargetList injects target-list matches into local results.
	IncludeTargetList bool

	// Magnitude bounds, inclusive. Nil means unbounded on that side.
	// Objects without a magnitude always pass.
	MinMagnitude *float64
	MaxMagnitude *float64

	// SearchRadius is the cone radius in degrees for coordinate-mode
	// queries. Carried for the UI layer; name search ignores it.
	SearchRadius float64

	// OnlineOnly suppresses the local stage entirely.
	OnlineOnly bool

	// Sources restricts the online stage to the given source IDs.
	// Empty means every enabled source.
	Sources map[SourceID]bool
}

// DefaultFilters returns the filter set used when the caller supplies none.
func DefaultFilters() SearchFilters {
	return SearchFilters{
		IncludeTargetList: true,
		SearchRadius:      1.0,
	}
}

// TypeAllowed reports whether t passes the type filter.
func (f SearchFilters) TypeAllowed(t ObjectType) bool {
	if len(f.Types) == 0 {
		return true
	}
	return f.Types[t]
}

// MagnitudePass reports whether o passes the magnitude bounds.
// Objects with no magnitude always pass; an inverted range
// (min > max) is accepted as-is and simply matches nothing.
func (f SearchFilters) MagnitudePass(o *SearchableObject) bool {
	if o.Magnitude == nil {
		return true
	}
	if f.MinMagnitude != nil && *o.Magnitude < *f.MinMagnitude {
		return false
	}
	if f.MaxMagnitude != nil && *o.Magnitude > *f.MaxMagnitude {
		return false
	}
	return true
}

// SourceAllowed reports whether id passes the source filter.
func (f SearchFilters) SourceAllowed(id SourceID) bool {
	if len(f.Sources) == 0 {
		return true
	}
	return f.Sources[id]
}

// FilterUpdate is a partial filter change merged onto the active set.
// Nil fields leave the current value untouched.
type FilterUpdate struct {
	Types             *map[ObjectType]bool
	IncludeTargetList *bool
	MinMagnitude      **float64
	MaxMagnitude      **float64
	SearchRadius      *float64
	OnlineOnly        *bool
	Sources           *map[SourceID]bool
}

// Apply merges u onto f and returns the new filter set.
func (u FilterUpdate) Apply(f SearchFilters) SearchFilters {
	if u.Types != nil {
		f.Types = *u.Types
	}
	if u.IncludeTargetList != nil {
		f.IncludeTargetList = *u.IncludeTargetList
	}
	if u.MinMagnitude != nil {
		f.MinMagnitude = *u.MinMagnitude
	}
	if u.MaxMagnitude != nil {
		f.MaxMagnitude = *u.MaxMagnitude
	}
	if u.SearchRadius != nil {
		f.SearchRadius = *u.SearchRadius
	}
	if u.OnlineOnly != nil {
		f.OnlineOnly = *u.OnlineOnly
	}
	if u.Sources != nil {
		f.Sources = *u.Sources
	}
	return f
}
