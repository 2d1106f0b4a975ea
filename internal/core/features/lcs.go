package features

import (
	"strings"

	"github.com/baditaflorin/go_word_similarity/internal/pool"
)

var rowPool = pool.NewIntRowPool(64)

// LCS returns the longest common subsequence length of the case-folded inputs
// divided by the longer input's length. Two empty strings score 0.
func LCS(s1, s2 string) float64 {
	return lcs(strings.ToLower(s1), strings.ToLower(s2))
}

func lcs(s1, s2 string) float64 {
	a, b := []rune(s1), []rune(s2)
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 0.0
	}
	return float64(lcsLength(a, b)) / float64(maxLen)
}

// lcsLength evaluates dp[i][j] = dp[i-1][j-1]+1 on a match, otherwise
// max(dp[i-1][j], dp[i][j-1]), keeping only the previous and current rows.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prevRow := rowPool.Get(len(b) + 1)
	currRow := rowPool.Get(len(b) + 1)
	defer rowPool.Put(prevRow)
	defer rowPool.Put(currRow)

	prev, curr := *prevRow, *currRow
	for i := 1; i <= len(a); i++ {
		curr[0] = 0
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
