package catalog

import (
	"strings"
	"testing"

	"github.com/skyseek/skyseek/internal/domain"
)

func TestLoad(t *testing.T) {
	objects, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(objects) == 0 {
		t.Fatal("bundled catalog is empty")
	}

	// Every object must carry a name and the local source.
	byName := make(map[string]domain.SearchableObject, len(objects))
	for _, o := range objects {
		if o.Name == "" {
			t.Fatal("catalog object with empty name")
		}
		if o.Source != domain.SourceLocal {
			t.Errorf("object %s has source %s, want local", o.Name, o.Source)
		}
		byName[strings.ToLower(o.Name)] = o
	}

	// Spot-check objects the scoring dictionary depends on.
	for _, name := range []string{"m31", "m42", "m45", "vega", "jupiter", "ic434"} {
		if _, ok := byName[name]; !ok {
			t.Errorf("expected catalog to contain %q", name)
		}
	}

	// Solar-system bodies load before deep-sky objects: the insertion
	// order is the score tie-break.
	if objects[0].Type != domain.TypePlanet && objects[0].Type != domain.TypeStar &&
		objects[0].Type != domain.TypeMoon {
		t.Errorf("first object should be a solar-system body, got %s (%s)",
			objects[0].Name, objects[0].Type)
	}

	m31 := byName["m31"]
	if m31.Type != domain.TypeDSO {
		t.Errorf("M31 type = %s, want dso", m31.Type)
	}
	if !m31.HasCoordinates() {
		t.Error("M31 should carry J2000 coordinates")
	}
	if m31.Magnitude == nil {
		t.Error("M31 should carry a magnitude")
	}
	if !strings.Contains(strings.ToLower(m31.CommonNames), "andromeda") {
		t.Errorf("M31 common names = %q, want to contain andromeda", m31.CommonNames)
	}
}

func TestMapEntries(t *testing.T) {
	ra, dec := 10.68, 41.27
	badRA := 400.0

	entries := []objectEntry{
		{Name: "Good", Type: "dso", RA: &ra, Dec: &dec},
		{Name: "", Type: "dso"},                          // no name: skipped
		{Name: "HalfCoords", Type: "dso", RA: &ra},       // RA without Dec: skipped
		{Name: "BadRA", Type: "dso", RA: &badRA, Dec: &dec}, // out of range: skipped
		{Name: "NoCoords", Type: "weird"},                // unknown type maps to unknown
	}

	objects, err := mapEntries(entries)
	if err != nil {
		t.Fatalf("mapEntries failed: %v", err)
	}
	if len(objects) != 2 {
		t.Fatalf("expected 2 valid objects, got %d", len(objects))
	}
	if objects[0].Name != "Good" || objects[1].Name != "NoCoords" {
		t.Errorf("unexpected survivors: %s, %s", objects[0].Name, objects[1].Name)
	}
	if objects[1].Type != domain.TypeUnknown {
		t.Errorf("unknown type name should map to unknown, got %s", objects[1].Type)
	}
}

func TestMapEntries_AllInvalid(t *testing.T) {
	entries := []objectEntry{{Name: ""}, {Name: ""}}
	if _, err := mapEntries(entries); err == nil {
		t.Error("expected an error when every entry is invalid")
	}
}

func TestIndex(t *testing.T) {
	idx := NewIndex()
	if idx.Count() != 0 {
		t.Fatal("new index should be empty")
	}
	if !idx.LastReload().IsZero() {
		t.Error("new index should have a zero reload time")
	}

	idx.Update([]domain.SearchableObject{{Name: "a"}, {Name: "b"}})
	if idx.Count() != 2 {
		t.Errorf("Count = %d, want 2", idx.Count())
	}
	if idx.LastReload().IsZero() {
		t.Error("reload time should be set after Update")
	}

	// All returns a copy.
	all := idx.All()
	all[0].Name = "mutated"
	if idx.All()[0].Name != "a" {
		t.Error("All should return a copy of the catalog")
	}
}
