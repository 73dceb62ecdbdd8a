package match

import (
	"strings"
	"unicode"
)

// stopWords filters common English words that add noise to keyword matching.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "high": true,
	"good": true, "able": true, "get": true, "set": true, "such": true,
	"years": true, "experience": true, "responsible": true,
}

// ExtractKeywords tokenizes text into a lowercase keyword set (>= 3 chars,
// stop words removed). Call once per resume and reuse across the batch.
// Tech terms like "c++", "c#" and "node.js" survive because + # . count
// as word characters.
func ExtractKeywords(text string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) >= 3 && !stopWords[w] {
			kw[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return kw
}

// salesResumeMarkers reveal a sales-function candidate regardless of the
// industry their resume mentions.
var salesResumeMarkers = []string{
	"sales", "quota", "territory", "account management", "business development",
	"crm", "pipeline", "prospecting", "closing",
}

// DetectFunction classifies the candidate's primary function from resume
// text. Only "sales" currently widens the job net (the function-expansion
// soft-inclusion rule); everything else returns "".
func DetectFunction(resumeText string) string {
	lower := strings.ToLower(resumeText)
	hits := 0
	for _, m := range salesResumeMarkers {
		if strings.Contains(lower, m) {
			hits++
		}
	}
	if hits >= 3 {
		return "sales"
	}
	return ""
}

// containsAny reports whether lower-cased text contains any of the needles.
func containsAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// countMatches counts needles present in both texts, up to limit.
func countMatches(resume, job string, needles []string, limit int) int {
	rl, jl := strings.ToLower(resume), strings.ToLower(job)
	n := 0
	for _, needle := range needles {
		k := strings.ToLower(needle)
		if strings.Contains(rl, k) && strings.Contains(jl, k) {
			n++
			if n >= limit {
				break
			}
		}
	}
	return n
}
