package domain

import "fmt"

// MinQueryLength is the minimum trimmed query length accepted by the
// online stage, the live-engine probe and the result cache.
const MinQueryLength = 2

// ObjectType classifies a searchable object.
type ObjectType string

const (
	TypeDSO           ObjectType = "dso"
	TypePlanet        ObjectType = "planet"
	TypeStar          ObjectType = "star"
	TypeMoon          ObjectType = "moon"
	TypeComet         ObjectType = "comet"
	TypeAsteroid      ObjectType = "asteroid"
	TypeConstellation ObjectType = "constellation"
	TypeTargetList    ObjectType = "target-list"
	TypeUnknown       ObjectType = "unknown"
)

// SourceID identifies where a result came from.
type SourceID string

const (
	// SourceLocal marks objects produced by the bundled catalog,
	// the target list or the live engine.
	SourceLocal SourceID = "local"

	SourceSimbad SourceID = "simbad"
	SourceSesame SourceID = "sesame"
)

// SearchableObject is the canonical unit of search data.
//
// RA and Dec are J2000 degrees; either both are set or both are nil.
// An object without coordinates can still be selected and displayed,
// it just cannot be added to the target list.
type SearchableObject struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// Name is the primary designation. Never empty.
	// Example: "M31", "Jupiter", "Orion"
	Name string

	Type ObjectType

	// ─────────────────────────────
	// Position & photometry
	// ─────────────────────────────

	RA  *float64 // degrees, [0, 360)
	Dec *float64 // degrees, [-90, 90]

	Magnitude   *float64
	AngularSize string

	// ─────────────────────────────
	// Naming
	// ─────────────────────────────

	// CommonNames is a display string of well-known names.
	// Example: "Andromeda Galaxy"
	CommonNames string

	// AlternateNames lists additional catalog designations.
	// Example: ["NGC 224", "UGC 454"]
	AlternateNames []string

	// ─────────────────────────────
	// Provenance
	// ─────────────────────────────

	Source    SourceID
	SourceURL string

	// Source-only enrichment, populated by remote resolvers.
	Redshift          *float64
	SpectralType      string
	MorphologicalType string
	Distance          string

	// IsOnlineResult is true for objects produced by a remote source.
	IsOnlineResult bool

	// Score is the relevance assigned by the match scorer for the
	// query that produced this result. Not persistent.
	Score float64
}

// ResultID derives the dedup/selection key for an object.
// It is stable for identical (source, type, name) triples and is
// regenerated per search, never persisted.
func (o *SearchableObject) ResultID() string {
	return fmt.Sprintf("%s-%s-%s", o.Source, o.Type, o.Name)
}

// HasCoordinates reports whether both RA and Dec are present.
func (o *SearchableObject) HasCoordinates() bool {
	return o.RA != nil && o.Dec != nil
}

// Ptr returns a pointer to v. Convenience for optional fields.
func Ptr(v float64) *float64 { return &v }
