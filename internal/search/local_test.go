package search

import (
	"errors"
	"fmt"
	"testing"

	"github.com/skyseek/skyseek/internal/domain"
)

type fakeTargets struct{ targets []Target }

func (f *fakeTargets) ListTargets() []Target { return f.targets }

type fakeLive struct {
	byDesignation *domain.SearchableObject
	dynamic       map[domain.ObjectType][]domain.SearchableObject
	fail          bool
}

func (f *fakeLive) FindByDesignation(name string) (*domain.SearchableObject, error) {
	if f.fail {
		return nil, errors.New("engine offline")
	}
	return f.byDesignation, nil
}

func (f *fakeLive) ListDynamicObjects(kind domain.ObjectType) ([]domain.SearchableObject, error) {
	if f.fail {
		return nil, errors.New("engine offline")
	}
	return f.dynamic[kind], nil
}

func testCatalog() []domain.SearchableObject {
	return []domain.SearchableObject{
		{Name: "M31", Type: domain.TypeDSO, CommonNames: "Andromeda Galaxy",
			AlternateNames: []string{"NGC 224"}, Magnitude: domain.Ptr(3.4), Source: domain.SourceLocal},
		{Name: "M42", Type: domain.TypeDSO, CommonNames: "Orion Nebula",
			Magnitude: domain.Ptr(4.0), Source: domain.SourceLocal},
		{Name: "Vega", Type: domain.TypeStar, Magnitude: domain.Ptr(0.03), Source: domain.SourceLocal},
		{Name: "Orion", Type: domain.TypeConstellation, Source: domain.SourceLocal},
	}
}

func TestLocal_CatalogIDQuery(t *testing.T) {
	results := Local("m31", domain.DefaultFilters(), testCatalog(), nil, nil)
	if len(results) == 0 {
		t.Fatal("expected results for m31")
	}
	if results[0].Name != "M31" {
		t.Errorf("top result = %s, want M31", results[0].Name)
	}
	if results[0].Score != domain.ScoreCatalogIDExact {
		t.Errorf("top score = %v, want %v", results[0].Score, domain.ScoreCatalogIDExact)
	}
}

func TestLocal_BlankQuery(t *testing.T) {
	if got := Local("   ", domain.DefaultFilters(), testCatalog(), nil, nil); got != nil {
		t.Errorf("blank query should return nil, got %v", got)
	}
}

func TestLocal_ThresholdExcludes(t *testing.T) {
	for _, r := range Local("zzzz", domain.DefaultFilters(), testCatalog(), nil, nil) {
		t.Errorf("unexpected result %s (score %v) below threshold", r.Name, r.Score)
	}
}

func TestLocal_TypeFilter(t *testing.T) {
	filters := domain.DefaultFilters()
	filters.Types = map[domain.ObjectType]bool{domain.TypeConstellation: true}

	results := Local("orion", filters, testCatalog(), nil, nil)
	for _, r := range results {
		if r.Type != domain.TypeConstellation {
			t.Errorf("type filter leaked %s (%s)", r.Name, r.Type)
		}
	}
	if len(results) != 1 {
		t.Fatalf("expected only the constellation, got %d results", len(results))
	}
}

func TestLocal_MagnitudeFilter(t *testing.T) {
	filters := domain.DefaultFilters()
	filters.MaxMagnitude = domain.Ptr(1.0)

	results := Local("vega", filters, testCatalog(), nil, nil)
	if len(results) != 1 || results[0].Name != "Vega" {
		t.Fatalf("expected Vega to pass the bound, got %v", results)
	}

	filters.MaxMagnitude = domain.Ptr(-1.0)
	if got := Local("vega", filters, testCatalog(), nil, nil); len(got) != 0 {
		t.Errorf("Vega should be filtered out by max magnitude -1, got %v", got)
	}
}

func TestLocal_TargetListBoost(t *testing.T) {
	targets := &fakeTargets{targets: []Target{
		{Name: "My Orion Session", RA: 83.8, Dec: -5.4},
		{Name: "Unrelated", RA: 0, Dec: 0},
	}}

	results := Local("orion", domain.DefaultFilters(), testCatalog(), targets, nil)
	if len(results) == 0 {
		t.Fatal("expected results")
	}

	var target *domain.SearchableObject
	for i := range results {
		if results[i].Type == domain.TypeTargetList {
			target = &results[i]
		}
	}
	if target == nil {
		t.Fatal("target-list match missing from results")
	}
	if target.Score != domain.TargetListBoost {
		t.Errorf("target score = %v, want %v", target.Score, domain.TargetListBoost)
	}
	// The boost outranks every generic fuzzy hit.
	if results[0].Type != domain.TypeTargetList {
		t.Errorf("target-list match should rank first, got %s", results[0].Name)
	}
}

func TestLocal_TargetListExcluded(t *testing.T) {
	targets := &fakeTargets{targets: []Target{{Name: "Orion Session"}}}
	filters := domain.DefaultFilters()
	filters.IncludeTargetList = false

	for _, r := range Local("orion", filters, testCatalog(), targets, nil) {
		if r.Type == domain.TypeTargetList {
			t.Error("target-list results should be excluded by the filter")
		}
	}
}

func TestLocal_LiveMatches(t *testing.T) {
	live := &fakeLive{
		dynamic: map[domain.ObjectType][]domain.SearchableObject{
			domain.TypeComet: {{Name: "C/2023 A3 Tsuchinshan-ATLAS", Type: domain.TypeComet}},
		},
	}

	results := Local("tsuchinshan", domain.DefaultFilters(), testCatalog(), nil, live)
	if len(results) != 1 {
		t.Fatalf("expected the comet, got %d results", len(results))
	}
	if results[0].Score < 0.6 {
		t.Errorf("live match score = %v, want >= 0.6", results[0].Score)
	}
	if results[0].Source != domain.SourceLocal {
		t.Errorf("live matches carry the local source, got %s", results[0].Source)
	}
}

func TestLocal_LiveFailureSwallowed(t *testing.T) {
	live := &fakeLive{fail: true}
	results := Local("m31", domain.DefaultFilters(), testCatalog(), nil, live)
	if len(results) == 0 {
		t.Fatal("live-engine failure must not break catalog results")
	}
}

func TestLocal_DedupAndCap(t *testing.T) {
	catalog := make([]domain.SearchableObject, 0, 80)
	for i := 0; i < 40; i++ {
		catalog = append(catalog, domain.SearchableObject{
			Name: fmt.Sprintf("Star cluster %02d", i),
			Type: domain.TypeDSO,
		})
	}
	// Exact duplicate rows: first occurrence wins.
	catalog = append(catalog, catalog[0])

	results := Local("star cluster", domain.DefaultFilters(), catalog, nil, nil)
	if len(results) != MaxLocalResults {
		t.Errorf("len = %d, want capped at %d", len(results), MaxLocalResults)
	}

	seen := make(map[string]int)
	for _, r := range results {
		seen[r.Name]++
	}
	for name, n := range seen {
		if n > 1 {
			t.Errorf("duplicate %q appears %d times", name, n)
		}
	}
}
