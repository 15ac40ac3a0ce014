package filter

import (
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
)

// KnownGenres are the genres offered for filtering.
var KnownGenres = []string{
	"Action",
	"Adventure",
	"Animation",
	"Comedy",
	"Crime",
	"Documentary",
	"Drama",
	"Family",
	"Musical",
	"Romance",
	"Sci-Fi",
	"Short",
	"Thriller",
	"War",
}

const suggestThreshold = 0.85

// SuggestGenre returns the known genre closest to input when input is not
// itself a known genre. Genre matching is case-sensitive, so "sci-fi"
// suggests "Sci-Fi".
func SuggestGenre(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" || input == AllGenres || slices.Contains(KnownGenres, input) {
		return "", false
	}

	folded := strings.ToLower(input)
	best, bestScore := "", float32(0)
	for _, g := range KnownGenres {
		score := edlib.JaroWinklerSimilarity(folded, strings.ToLower(g))
		if score > bestScore {
			best, bestScore = g, score
		}
	}
	if bestScore < suggestThreshold {
		return "", false
	}
	return best, true
}
