package features

import "strings"

// DefaultNGramSize is the n-gram length the shipped model was trained with.
const DefaultNGramSize = 3

type ngramSet map[string]struct{}

// ngrams returns the set of contiguous rune n-grams of s. Strings shorter
// than n yield an empty set.
func ngrams(s string, n int) ngramSet {
	runes := []rune(s)
	if n <= 0 || len(runes) < n {
		return ngramSet{}
	}
	set := make(ngramSet, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		set[string(runes[i:i+n])] = struct{}{}
	}
	return set
}

func intersectionSize(a, b ngramSet) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	count := 0
	for g := range a {
		if _, ok := b[g]; ok {
			count++
		}
	}
	return count
}

// Jaccard returns |A∩B| / |A∪B| over the n-gram sets of the case-folded inputs.
func Jaccard(s1, s2 string, n int) float64 {
	return jaccard(strings.ToLower(s1), strings.ToLower(s2), n)
}

func jaccard(s1, s2 string, n int) float64 {
	a, b := ngrams(s1, n), ngrams(s2, n)
	inter := intersectionSize(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

// Dice returns 2|A∩B| / (|A|+|B|) over the n-gram sets of the case-folded inputs.
func Dice(s1, s2 string, n int) float64 {
	return dice(strings.ToLower(s1), strings.ToLower(s2), n)
}

func dice(s1, s2 string, n int) float64 {
	a, b := ngrams(s1, n), ngrams(s2, n)
	total := len(a) + len(b)
	if total == 0 {
		return 0.0
	}
	return 2 * float64(intersectionSize(a, b)) / float64(total)
}
