package match

import (
	"sort"
	"strings"
)

// Similarity scores how alike two strings are, in [0,1]. Inputs may be
// arbitrary free text; implementations normalize internally. Injected into
// the prefilter so the algorithm can be swapped without touching its
// decision logic.
type Similarity interface {
	Ratio(a, b string) float64
}

// TokenSetRatio is the default Similarity: order-insensitive token-set
// comparison. When one side's tokens are a subset of the other's the
// ratio is 1.0, which is the behaviour we want for short job titles
// against long resumes.
type TokenSetRatio struct{}

func (TokenSetRatio) Ratio(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var inter, onlyA, onlyB []string
	for t := range ta {
		if tb[t] {
			inter = append(inter, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range tb {
		if !ta[t] {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(inter, " ")
	full1 := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	full2 := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	r := levenshteinRatio(base, full1)
	if v := levenshteinRatio(base, full2); v > r {
		r = v
	}
	if v := levenshteinRatio(full1, full2); v > r {
		r = v
	}
	return r
}

func tokenSet(s string) map[string]bool {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	out := make(map[string]bool)
	for _, w := range strings.Fields(b.String()) {
		out[w] = true
	}
	return out
}

func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	denom := max(len([]rune(a)), len([]rune(b)))
	if denom == 0 {
		return 1
	}
	r := 1 - float64(levenshteinDistance(a, b))/float64(denom)
	if r < 0 {
		return 0
	}
	return r
}

func levenshteinDistance(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) < len(br) {
		ar, br = br, ar
	}
	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}
