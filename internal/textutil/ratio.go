package textutil

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ratio returns the similarity of a and b in the range 0-100. Either side
// being empty scores 0.
func Ratio(a, b string) int {
	ra := []rune(Fold(a))
	rb := []rune(Fold(b))
	total := len(ra) + len(rb)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	common := longestCommonSubsequence(ra, rb)
	return int(math.Round(200 * float64(common) / float64(total)))
}

func longestCommonSubsequence(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// Fold case-folds s for caseless comparison.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// EqualFold reports whether a and b are equal after trimming and case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Upper returns the canonical upper-cased form of a character name.
func Upper(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}
