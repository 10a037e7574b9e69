package match

import (
	"strings"
)

// MinScore is the similarity a candidate needs to be suggested.
const MinScore = 0.5

// Normalize folds s to lower case and strips '_', '-' and spaces, so that
// "Map_1", "map-1" and "MAP1" compare equal.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Closest returns the candidate most similar to name after normalization.
// Ties go to the earlier candidate. ok is false when no candidate reaches
// MinScore or when name equals a candidate exactly.
func Closest(name string, candidates []string) (best string, ok bool) {
	norm := Normalize(name)
	score := MinScore

	for _, c := range candidates {
		if c == name {
			return "", false
		}

		if s := Similarity(norm, Normalize(c)); s > score || (s == score && !ok) {
			best, score, ok = c, s, true
		}
	}

	return best, ok
}

// Hint formats the Closest candidate as a sentence suffix, or returns "".
func Hint(name string, candidates []string) string {
	best, ok := Closest(name, candidates)
	if !ok {
		return ""
	}

	return ` (did you mean "` + best + `"?)`
}
