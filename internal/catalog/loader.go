package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/skyseek/skyseek/internal/domain"
)

//go:embed data/*.yaml
var dataFS embed.FS

// tableOrder fixes the load order of the bundled tables. Insertion
// order defines tie-break priority for equal scores, so this list is
// part of the search contract: bodies beat deep-sky objects beat stars
// beat constellations when everything else is equal.
var tableOrder = []string{
	"data/solar_system.yaml",
	"data/dso.yaml",
	"data/stars.yaml",
	"data/constellations.yaml",
}

// Load parses every bundled table into the canonical object shape.
func Load() ([]domain.SearchableObject, error) {
	var objects []domain.SearchableObject

	for _, path := range tableOrder {
		raw, err := dataFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog table %s: %w", path, err)
		}

		var file catalogFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("failed to parse catalog table %s: %w", path, err)
		}

		mapped, err := mapEntries(file.Objects)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog table %s: %w", path, err)
		}
		objects = append(objects, mapped...)
	}

	if len(objects) == 0 {
		return nil, fmt.Errorf("no objects found in bundled catalog")
	}
	return objects, nil
}
