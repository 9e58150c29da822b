package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// CatalogID is a structured designation like "M31" or "NGC 224",
// a catalog prefix plus a number.
type CatalogID struct {
	Catalog string
	Number  int
}

// String renders the canonical compact form ("M31", "NGC224").
func (c CatalogID) String() string {
	return c.Catalog + strconv.Itoa(c.Number)
}

// catalogAliases maps long-form prefixes to their canonical catalog.
var catalogAliases = map[string]string{
	"MESSIER":   "M",
	"CALDWELL":  "C",
	"BARNARD":   "B",
	"SHARPLESS": "SH2",
}

// knownCatalogs lists prefixes accepted as catalog designations.
// Anything else parses as "not a catalog ID" so that plain words
// ("vega") fall through to the name-matching rules.
var knownCatalogs = map[string]bool{
	"M":   true,
	"NGC": true,
	"IC":  true,
	"C":   true,
	"B":   true,
	"SH2": true,
	"HD":  true,
	"HIP": true,
	"HR":  true,
	"SAO": true,
	"UGC": true,
	"PGC": true,
}

// ParseCatalogID parses a designation into (catalog, number).
// Whitespace, dashes and case are insignificant: "M 31", "m-31",
// "Messier 31" and "M031" all parse to {M 31}.
func ParseCatalogID(s string) (CatalogID, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CatalogID{}, false
	}

	var letters, digits strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			// Letters after digits mean a suffix ("M31A"): reject.
			if digits.Len() > 0 {
				return CatalogID{}, false
			}
			letters.WriteRune(unicode.ToUpper(r))
		case unicode.IsDigit(r):
			digits.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			// separators are insignificant
		default:
			return CatalogID{}, false
		}
	}

	prefix := letters.String()
	num := digits.String()
	if alias, ok := catalogAliases[prefix]; ok {
		prefix = alias
	}
	// "SH2 155": the 2 belongs to the prefix, not the number.
	if prefix == "SH" && len(num) > 1 && num[0] == '2' {
		prefix, num = "SH2", num[1:]
	}
	if !knownCatalogs[prefix] {
		return CatalogID{}, false
	}
	if num == "" {
		return CatalogID{}, false
	}

	n, err := strconv.Atoi(num)
	if err != nil || n <= 0 {
		return CatalogID{}, false
	}
	return CatalogID{Catalog: prefix, Number: n}, true
}

// MatchesDesignation reports whether the object carries the given
// designation under its primary or alternate names. Comparison is by
// parsed catalog ID when both sides parse, case-insensitive otherwise.
func (o *SearchableObject) MatchesDesignation(designation string) bool {
	want, wantOK := ParseCatalogID(designation)

	names := make([]string, 0, 1+len(o.AlternateNames))
	names = append(names, o.Name)
	names = append(names, o.AlternateNames...)

	for _, name := range names {
		if wantOK {
			if got, ok := ParseCatalogID(name); ok && got == want {
				return true
			}
		}
		if strings.EqualFold(name, designation) {
			return true
		}
	}
	return false
}
