package sources

import (
	"strings"

	"github.com/skyseek/skyseek/internal/domain"
)

// otypes maps remote object-category tokens onto the local type enum.
// SIMBAD short codes and Sesame descriptive labels both land here.
var otypes = map[string]domain.ObjectType{
	"galaxy":        domain.TypeDSO,
	"g":             domain.TypeDSO,
	"agn":           domain.TypeDSO,
	"seyfert":       domain.TypeDSO,
	"nebula":        domain.TypeDSO,
	"neb":           domain.TypeDSO,
	"pn":            domain.TypeDSO,
	"hii":           domain.TypeDSO,
	"snr":           domain.TypeDSO,
	"opc":           domain.TypeDSO,
	"opencluster":   domain.TypeDSO,
	"glc":           domain.TypeDSO,
	"globcluster":   domain.TypeDSO,
	"cl*":           domain.TypeDSO,
	"star":          domain.TypeStar,
	"*":             domain.TypeStar,
	"**":            domain.TypeStar,
	"v*":            domain.TypeStar,
	"pm*":           domain.TypeStar,
	"planet":        domain.TypePlanet,
	"pla":           domain.TypePlanet,
	"moon":          domain.TypeMoon,
	"comet":         domain.TypeComet,
	"com":           domain.TypeComet,
	"asteroid":      domain.TypeAsteroid,
	"ast":           domain.TypeAsteroid,
	"minorplanet":   domain.TypeAsteroid,
	"constellation": domain.TypeConstellation,
}

// normalizeType maps a remote category to an ObjectType. Unrecognized
// categories become DSO rather than being dropped: the resolution
// services mostly serve deep-sky lookups, and an odd label is not a
// reason to hide a result.
func normalizeType(raw string) domain.ObjectType {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "")
	if t, ok := otypes[key]; ok {
		return t
	}
	// SIMBAD stellar codes are built around "*" ("s*r", "rg*", "ma*").
	if strings.Contains(key, "*") {
		return domain.TypeStar
	}
	return domain.TypeDSO
}
