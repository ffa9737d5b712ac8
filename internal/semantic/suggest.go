package semantic

import "github.com/hbollon/go-edlib"

// suggestThreshold is the minimum Jaro-Winkler similarity a candidate name
// needs before it is worth surfacing as a "did you mean" guess (spec
// §6.2's diagnostic contract; the threshold itself is not spec-mandated,
// chosen to match the 0.80 default standardbeagle-lci's fuzzy matcher
// uses for the same algorithm).
const suggestThreshold = 0.80

// suggestName finds the candidate most similar to name by Jaro-Winkler
// distance, for the help text on an unresolved-reference diagnostic.
// Grounded on standardbeagle-lci's internal/semantic/fuzzy_matcher.go,
// trimmed to the one algorithm this core needs.
func suggestName(name string, candidates []string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, candidate := range candidates {
		if candidate == name {
			continue
		}
		score, err := edlib.StringsSimilarity(name, candidate, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if float64(score) > bestScore {
			bestScore = float64(score)
			best = candidate
		}
	}
	if bestScore >= suggestThreshold {
		return best, true
	}
	return "", false
}
