package domain

import (
	"strings"
)

const (
	// Scoring ladder. Rules are evaluated in priority order and the
	// first qualifying rule wins.
	ScoreCatalogIDExact  = 2.0
	ScoreCommonNameExact = 1.8
	ScorePhoneticMax     = 1.7
	ScorePhoneticBase    = 1.6
	CommonNameSimWeight  = 1.5

	// CommonNameSimFloor is the Jaro-Winkler similarity a query must
	// reach against a common name before rule 4 applies.
	CommonNameSimFloor = 0.85

	// phoneticSimFloor is the similarity a query must reach against a
	// known variant before rule 3 applies. The phonetic score spans
	// [1.6, 1.7] across that remaining similarity range.
	phoneticSimFloor = 0.9

	// Generic fuzzy sub-scores (rule 5), all within [0, 1].
	scoreNameExact      = 1.0
	scoreNamePrefix     = 0.8
	scoreNameSubstring  = 0.6
	scoreSubstringBonus = 0.15
	scoreAllWords       = 0.45
	scoreSimilarityCap  = 0.4

	// FuzzyThreshold is the minimum scorer output required for a
	// candidate to appear in local results.
	FuzzyThreshold = 0.3

	// TargetListBoost is the fixed score assigned to target-list
	// substring matches.
	TargetListBoost = 1.5
)

// Score computes the relevance of an object for a free-text query.
// Output is in [0, 2.0]; 0 means "no match" and callers must exclude
// the candidate. Ties are broken by catalog insertion order, so equal
// scores are fine here.
func Score(o *SearchableObject, query string) float64 {
	if o == nil {
		return 0.0
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0.0
	}

	// Rule 1: catalog-ID exact match ("M31" == "M 31" == "m031").
	if qid, ok := ParseCatalogID(query); ok {
		for _, name := range o.designations() {
			if id, ok2 := ParseCatalogID(name); ok2 && id == qid {
				return ScoreCatalogIDExact
			}
		}
	}

	// Rule 2: common-name dictionary exact match.
	if d, ok := CommonNameDesignation(query); ok && o.MatchesDesignation(d) {
		return ScoreCommonNameExact
	}

	// Rule 3: phonetic variation of a known common name.
	if s := phoneticScore(o, query); s > 0 {
		return s
	}

	// Rule 4: common-name string similarity.
	if best := commonNameSimilarity(o, query); best > CommonNameSimFloor {
		return best * CommonNameSimWeight
	}

	// Rule 5: generic substring/fuzzy match.
	return baseScore(o, query)
}

// designations returns the object's primary and alternate names.
func (o *SearchableObject) designations() []string {
	names := make([]string, 0, 1+len(o.AlternateNames))
	names = append(names, o.Name)
	names = append(names, o.AlternateNames...)
	return names
}

// phoneticScore matches the query against known misspellings and short
// forms of canonical common names. A hit scores in [1.6, 1.7] scaled by
// how close the query is to the variant.
func phoneticScore(o *SearchableObject, query string) float64 {
	for canonical, variants := range phoneticVariants {
		designation, ok := CommonNameDesignation(canonical)
		if !ok || !o.MatchesDesignation(designation) {
			continue
		}
		best := 0.0
		for _, v := range variants {
			sim := 1.0
			if v != query {
				sim = JaroWinkler(query, v)
			}
			if sim > best {
				best = sim
			}
		}
		if best >= phoneticSimFloor {
			// Map [phoneticSimFloor, 1.0] onto [1.6, 1.7]. The division
			// can overshoot the ceiling by a rounding error, so clamp.
			s := ScorePhoneticBase + (best-phoneticSimFloor)/(1.0-phoneticSimFloor)*(ScorePhoneticMax-ScorePhoneticBase)
			if s > ScorePhoneticMax {
				s = ScorePhoneticMax
			}
			return s
		}
	}
	return 0.0
}

// commonNameSimilarity returns the best Jaro-Winkler similarity between
// the query and any of the object's common names.
func commonNameSimilarity(o *SearchableObject, query string) float64 {
	if o.CommonNames == "" {
		return 0.0
	}
	best := 0.0
	for _, piece := range strings.Split(o.CommonNames, ",") {
		piece = strings.ToLower(strings.TrimSpace(piece))
		if piece == "" {
			continue
		}
		if sim := JaroWinkler(query, piece); sim > best {
			best = sim
		}
	}
	return best
}

// baseScore is the generic fallback matcher over every name the object
// carries. Output stays within [0, 1].
func baseScore(o *SearchableObject, query string) float64 {
	candidates := o.designations()
	if o.CommonNames != "" {
		for _, piece := range strings.Split(o.CommonNames, ",") {
			candidates = append(candidates, strings.TrimSpace(piece))
		}
	}

	best := 0.0
	for _, candidate := range candidates {
		if s := matchFragment(query, strings.ToLower(candidate)); s > best {
			best = s
		}
	}
	return best
}

// matchFragment scores a single lowercase query against a single
// lowercase candidate name.
func matchFragment(query, name string) float64 {
	if query == "" || name == "" {
		return 0.0
	}

	if query == name {
		return scoreNameExact
	}
	if strings.HasPrefix(name, query) {
		return scoreNamePrefix
	}
	if idx := strings.Index(name, query); idx >= 0 {
		// Earlier substring matches score higher.
		return scoreNameSubstring + scoreSubstringBonus*(1.0-float64(idx)/float64(len(name)))
	}

	// Multi-word queries: every word must appear somewhere.
	words := strings.Fields(query)
	if len(words) > 1 {
		all := true
		for _, w := range words {
			if !strings.Contains(name, w) {
				all = false
				break
			}
		}
		if all {
			return scoreAllWords
		}
	}

	if sim := JaroWinkler(query, name); sim > 0.5 {
		return scoreSimilarityCap * sim
	}
	return 0.0
}

// JaroWinkler computes the Jaro-Winkler similarity of two strings,
// in [0, 1]. Prefix scaling factor 0.1 over at most 4 characters.
func JaroWinkler(a, b string) float64 {
	jaro := jaroSimilarity(a, b)
	if jaro == 0 {
		return 0
	}

	prefix := 0
	for i := 0; i < len(a) && i < len(b) && i < 4; i++ {
		if a[i] != b[i] {
			break
		}
		prefix++
	}
	return jaro + float64(prefix)*0.1*(1.0-jaro)
}

func jaroSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0.0
	}

	window := max(la, lb)/2 - 1
	if window < 0 {
		window = 0
	}

	aMatched := make([]bool, la)
	bMatched := make([]bool, lb)
	matches := 0

	for i := 0; i < la; i++ {
		lo := max(0, i-window)
		hi := min(lb-1, i+window)
		for j := lo; j <= hi; j++ {
			if bMatched[j] || a[i] != b[j] {
				continue
			}
			aMatched[i] = true
			bMatched[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0.0
	}

	transpositions := 0
	j := 0
	for i := 0; i < la; i++ {
		if !aMatched[i] {
			continue
		}
		for !bMatched[j] {
			j++
		}
		if a[i] != b[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	t := float64(transpositions) / 2.0
	return (m/float64(la) + m/float64(lb) + (m-t)/m) / 3.0
}
