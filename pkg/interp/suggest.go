package interp

import "github.com/lithammer/fuzzysearch/fuzzy"

// maxSuggestDistance is the largest edit distance still offered as a suggestion.
const maxSuggestDistance = 2

// suggest returns the known name closest to unknown, or "" when none is
// within maxSuggestDistance. Ties go to the earlier candidate.
func suggest(unknown string, candidates []string) string {
	best := ""
	bestScore := maxSuggestDistance + 1
	for _, c := range candidates {
		if c == unknown {
			continue
		}
		if d := len(c) - len(unknown); d > maxSuggestDistance || -d > maxSuggestDistance {
			continue
		}
		if score := fuzzy.LevenshteinDistance(unknown, c); score < bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}
