package search

import (
	"sort"
	"strings"

	"github.com/skyseek/skyseek/internal/domain"
)

// MaxLocalResults caps the local stage output.
const MaxLocalResults = 30

// liveMatchScore is assigned to live-engine designation matches when
// the scorer alone would rank them below the inclusion threshold.
// Dynamic designations ("C/2023 A3") rarely resemble typed queries.
const liveMatchScore = 0.6

// Local runs the synchronous search stage over the bundled catalog,
// the target list and (optionally) the live engine. It never blocks on
// I/O and never returns an error: live-engine failures are swallowed.
func Local(query string, filters domain.SearchFilters, catalog []domain.SearchableObject, targets TargetProvider, live LiveEngine) []domain.SearchableObject {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	lower := strings.ToLower(query)

	results := make([]domain.SearchableObject, 0, MaxLocalResults)
	// Dedup key is (type, name): the catalog's insertion order defines
	// which duplicate wins.
	seen := make(map[string]bool)

	if filters.IncludeTargetList && targets != nil {
		for _, t := range targets.ListTargets() {
			if !strings.Contains(strings.ToLower(t.Name), lower) {
				continue
			}
			if !filters.TypeAllowed(domain.TypeTargetList) {
				continue
			}
			obj := domain.SearchableObject{
				Name:   t.Name,
				Type:   domain.TypeTargetList,
				RA:     domain.Ptr(t.RA),
				Dec:    domain.Ptr(t.Dec),
				Source: domain.SourceLocal,
				Score:  domain.TargetListBoost,
			}
			if key := dedupKey(&obj); !seen[key] {
				seen[key] = true
				results = append(results, obj)
			}
		}
	}

	for i := range catalog {
		obj := catalog[i]
		score := domain.Score(&obj, query)
		if score < domain.FuzzyThreshold {
			continue
		}
		if !filters.TypeAllowed(obj.Type) || !filters.MagnitudePass(&obj) {
			continue
		}
		key := dedupKey(&obj)
		if seen[key] {
			continue
		}
		seen[key] = true
		obj.Score = score
		results = append(results, obj)
	}

	if live != nil && len(query) >= domain.MinQueryLength {
		results = appendLiveMatches(results, seen, query, lower, filters, live)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > MaxLocalResults {
		results = results[:MaxLocalResults]
	}
	return results
}

// appendLiveMatches probes the live engine's dynamic object sets.
// Errors mean "no additional matches", never a failed search.
func appendLiveMatches(results []domain.SearchableObject, seen map[string]bool, query, lower string, filters domain.SearchFilters, live LiveEngine) []domain.SearchableObject {
	if obj, err := live.FindByDesignation(query); err == nil && obj != nil {
		results = addLiveObject(results, seen, *obj, query, filters)
	}

	for _, kind := range []domain.ObjectType{domain.TypeComet, domain.TypeAsteroid} {
		objs, err := live.ListDynamicObjects(kind)
		if err != nil {
			continue
		}
		for _, obj := range objs {
			if !strings.Contains(strings.ToLower(obj.Name), lower) {
				continue
			}
			results = addLiveObject(results, seen, obj, query, filters)
		}
	}
	return results
}

func addLiveObject(results []domain.SearchableObject, seen map[string]bool, obj domain.SearchableObject, query string, filters domain.SearchFilters) []domain.SearchableObject {
	if obj.Name == "" {
		return results
	}
	if !filters.TypeAllowed(obj.Type) || !filters.MagnitudePass(&obj) {
		return results
	}
	key := dedupKey(&obj)
	if seen[key] {
		return results
	}
	seen[key] = true

	obj.Source = domain.SourceLocal
	obj.Score = domain.Score(&obj, query)
	if obj.Score < liveMatchScore {
		obj.Score = liveMatchScore
	}
	return append(results, obj)
}

func dedupKey(o *domain.SearchableObject) string {
	return string(o.Type) + "|" + strings.ToLower(o.Name)
}
