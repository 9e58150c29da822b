package catalog

import (
	"fmt"

	"github.com/skyseek/skyseek/internal/domain"
)

var typeNames = map[string]domain.ObjectType{
	"dso":           domain.TypeDSO,
	"planet":        domain.TypePlanet,
	"star":          domain.TypeStar,
	"moon":          domain.TypeMoon,
	"comet":         domain.TypeComet,
	"asteroid":      domain.TypeAsteroid,
	"constellation": domain.TypeConstellation,
}

// mapEntries converts raw catalog rows to domain objects, preserving
// row order. Rows that violate the object invariants are skipped; a
// table that yields nothing at all is an error.
func mapEntries(entries []objectEntry) ([]domain.SearchableObject, error) {
	objects := make([]domain.SearchableObject, 0, len(entries))

	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		// Coordinates come in pairs or not at all.
		if (e.RA == nil) != (e.Dec == nil) {
			continue
		}
		if e.RA != nil && (*e.RA < 0 || *e.RA >= 360 || *e.Dec < -90 || *e.Dec > 90) {
			continue
		}

		t, ok := typeNames[e.Type]
		if !ok {
			t = domain.TypeUnknown
		}

		objects = append(objects, domain.SearchableObject{
			Name:           e.Name,
			Type:           t,
			RA:             e.RA,
			Dec:            e.Dec,
			Magnitude:      e.Magnitude,
			AngularSize:    e.Size,
			CommonNames:    e.CommonNames,
			AlternateNames: e.Alternates,
			Source:         domain.SourceLocal,
		})
	}

	if len(objects) == 0 && len(entries) > 0 {
		return nil, fmt.Errorf("no valid objects after mapping %d entries", len(entries))
	}
	return objects, nil
}
