package features

import (
	"strings"
	"unicode/utf8"
)

// stripPossessive removes every "'s" and then every remaining "s".
// The order matters: "bestbuy's" becomes "betbuy", not "betbuy'".
func stripPossessive(s string) string {
	s = strings.ReplaceAll(s, "'s", "")
	return strings.ReplaceAll(s, "s", "")
}

// Possessive scores pairs that differ only by possessive or plural markers.
// Matching stems score 1 minus the relative length difference of the folded
// inputs; anything else falls back to LCS.
func Possessive(s1, s2 string) float64 {
	return possessive(strings.ToLower(s1), strings.ToLower(s2))
}

func possessive(s1, s2 string) float64 {
	if stripPossessive(s1) != stripPossessive(s2) {
		return lcs(s1, s2)
	}
	len1, len2 := utf8.RuneCountInString(s1), utf8.RuneCountInString(s2)
	maxLen := max(len1, len2)
	if maxLen == 0 {
		return 1.0
	}
	diff := len1 - len2
	if diff < 0 {
		diff = -diff
	}
	return max(0.0, 1.0-float64(diff)/float64(maxLen))
}
