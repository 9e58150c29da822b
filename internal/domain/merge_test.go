package domain

import "testing"

func TestMergeResults(t *testing.T) {
	local := []SearchableObject{
		{Name: "M31", Type: TypeDSO, Source: SourceLocal, Score: 2.0},
		{Name: "M32", Type: TypeDSO, Source: SourceLocal, Score: 0.8},
	}
	online := []SearchableObject{
		{Name: "m31", Type: TypeDSO, Source: SourceSimbad, Score: 1.9, IsOnlineResult: true},
		{Name: "M110", Type: TypeDSO, Source: SourceSimbad, Score: 1.0, IsOnlineResult: true},
	}

	merged := MergeResults(local, online)

	if len(merged) != 3 {
		t.Fatalf("expected 3 merged results, got %d", len(merged))
	}

	// The local M31 survives; the online duplicate is dropped.
	for _, o := range merged {
		if o.Name == "M31" && o.Source != SourceLocal {
			t.Errorf("local M31 should win over the online duplicate, got source %s", o.Source)
		}
	}

	// Sorted by score descending.
	for i := 1; i < len(merged); i++ {
		if merged[i].Score > merged[i-1].Score {
			t.Errorf("results not sorted by score: %v before %v", merged[i-1].Score, merged[i].Score)
		}
	}
}

func TestMergeResults_NameOnlyDedup(t *testing.T) {
	// Dedup ignores the type: a star and a DSO sharing a name collapse
	// into the local entry.
	local := []SearchableObject{
		{Name: "Mira", Type: TypeStar, Source: SourceLocal, Score: 1.0},
	}
	online := []SearchableObject{
		{Name: "Mira", Type: TypeDSO, Source: SourceSimbad, Score: 1.5},
	}

	merged := MergeResults(local, online)
	if len(merged) != 1 {
		t.Fatalf("expected 1 result after name-only dedup, got %d", len(merged))
	}
	if merged[0].Type != TypeStar {
		t.Errorf("expected the local entry to survive, got type %s", merged[0].Type)
	}
}

func TestMergeResults_EmptySides(t *testing.T) {
	online := []SearchableObject{{Name: "M1", Score: 1.0}}

	if got := MergeResults(nil, online); len(got) != 1 {
		t.Errorf("merge with empty local: got %d results, want 1", len(got))
	}
	if got := MergeResults(online, nil); len(got) != 1 {
		t.Errorf("merge with empty online: got %d results, want 1", len(got))
	}
	if got := MergeResults(nil, nil); len(got) != 0 {
		t.Errorf("merge of nothing: got %d results, want 0", len(got))
	}
}
