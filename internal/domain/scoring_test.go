package domain

import (
	"math"
	"testing"
)

func m31() *SearchableObject {
	return &SearchableObject{
		Name:           "M31",
		Type:           TypeDSO,
		AlternateNames: []string{"NGC 224"},
		CommonNames:    "Andromeda Galaxy",
		Source:         SourceLocal,
	}
}

func TestScore_CatalogIDExact(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"compact", "M31"},
		{"lowercase", "m31"},
		{"with space", "M 31"},
		{"with dash", "m-31"},
		{"leading zeros", "M031"},
		{"long form", "Messier 31"},
		{"alternate designation", "NGC224"},
		{"alternate with space", "ngc 224"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(m31(), tt.query)
			if got != ScoreCatalogIDExact {
				t.Errorf("Score(%q) = %v, want %v", tt.query, got, ScoreCatalogIDExact)
			}
		})
	}
}

func TestScore_CommonNameDictionary(t *testing.T) {
	got := Score(m31(), "andromeda galaxy")
	if got != ScoreCommonNameExact {
		t.Errorf("Score(andromeda galaxy) = %v, want %v", got, ScoreCommonNameExact)
	}

	// Case-insensitive.
	got = Score(m31(), "Andromeda Galaxy")
	if got != ScoreCommonNameExact {
		t.Errorf("Score(Andromeda Galaxy) = %v, want %v", got, ScoreCommonNameExact)
	}
}

func TestScore_PhoneticVariants(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  float64
	}{
		// Exact variant hits map to the top of the phonetic band.
		{"short form", "andromeda", 1.7},
		{"misspelling", "andromida", 1.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(m31(), tt.query)
			if got != tt.want {
				t.Errorf("Score(%q) = %v, want exactly %v", tt.query, got, tt.want)
			}
		})
	}

	// A near-variant still lands inside the phonetic band. The band is
	// a hard ceiling: rounding must never push a variant above 1.7.
	got := Score(m31(), "andromedaa")
	if got < ScorePhoneticBase || got > ScorePhoneticMax {
		t.Errorf("Score(andromedaa) = %v, want within [%v, %v]", got, ScorePhoneticBase, ScorePhoneticMax)
	}
}

func TestScore_PhoneticOutranksSimilarity(t *testing.T) {
	// Phonetic hits must beat the common-name similarity rule, which
	// would otherwise score near-matches of "andromeda galaxy" at
	// sim * 1.5 < 1.6.
	phonetic := Score(m31(), "andromeda")
	similarity := Score(m31(), "andromeda galax")
	if phonetic <= similarity {
		t.Errorf("phonetic score %v should outrank similarity score %v", phonetic, similarity)
	}
}

func TestScore_GenericFallback(t *testing.T) {
	vega := &SearchableObject{Name: "Vega", Type: TypeStar}

	tests := []struct {
		name  string
		query string
		want  float64
	}{
		{"exact name", "vega", 1.0},
		{"prefix", "ve", 0.8},
		{"no match", "xqzj", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(vega, tt.query)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}

	// Substring: earlier positions score higher.
	early := Score(&SearchableObject{Name: "abcdef"}, "bcd")
	late := Score(&SearchableObject{Name: "xyzbcd"}, "bcd")
	if early <= late {
		t.Errorf("substring at index 1 (%v) should beat index 3 (%v)", early, late)
	}
}

func TestScore_MultiWordAllWords(t *testing.T) {
	obj := &SearchableObject{Name: "Great Orion Cloud"}
	got := Score(obj, "cloud great")
	if got != 0.45 {
		t.Errorf("Score(cloud great) = %v, want 0.45", got)
	}
}

func TestScore_EmptyAndNil(t *testing.T) {
	if got := Score(nil, "m31"); got != 0 {
		t.Errorf("Score(nil) = %v, want 0", got)
	}
	if got := Score(m31(), ""); got != 0 {
		t.Errorf("Score(empty) = %v, want 0", got)
	}
	if got := Score(m31(), "   "); got != 0 {
		t.Errorf("Score(blank) = %v, want 0", got)
	}
}

func TestJaroWinkler(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "pleiades", "pleiades", 1.0},
		{"empty left", "", "pleiades", 0.0},
		{"both empty", "", "", 1.0},
		{"disjoint", "abc", "xyz", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JaroWinkler(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("JaroWinkler(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}

	// Close strings beat distant ones, and the shared prefix helps.
	near := JaroWinkler("andromeda", "andromida")
	far := JaroWinkler("andromeda", "pleiades")
	if near <= far {
		t.Errorf("JaroWinkler near (%v) should beat far (%v)", near, far)
	}
	if near < 0.9 {
		t.Errorf("JaroWinkler(andromeda, andromida) = %v, want >= 0.9", near)
	}
}
