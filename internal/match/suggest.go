package match

// MinSuggestScore is the similarity a candidate needs to be suggested.
const MinSuggestScore = 0.5

// Suggest returns the candidate closest to name after normalization. ok is
// false when nothing scores at least MinSuggestScore, or when name already
// is a candidate. Ties keep the earlier candidate.
func Suggest(name string, candidates []string) (best string, ok bool) {
	bestScore := 0.0

	for _, c := range candidates {
		if c == name {
			return "", false
		}

		score := IdentSimilarity(name, c)
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < MinSuggestScore {
		return "", false
	}

	return best, true
}
