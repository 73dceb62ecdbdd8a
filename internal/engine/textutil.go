package engine

import "strings"

// CleanText collapses whitespace (including NBSP) and trims.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// dashVariants are the separators humans type instead of a plain hyphen.
var dashVariants = []string{"–", "—", " to "}

// NormalizeDashes rewrites en/em dashes and the word "to" into "-" so
// range parsing only needs to handle one separator.
func NormalizeDashes(s string) string {
	for _, d := range dashVariants {
		s = strings.ReplaceAll(s, d, "-")
	}
	return s
}

// SplitRange splits "A-B" into at most two trimmed components after dash
// normalization. A single value comes back as a one-element slice.
func SplitRange(s string) []string {
	parts := strings.SplitN(NormalizeDashes(s), "-", 2)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Truncate returns the first n bytes of s.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ContainsFold reports whether s contains substr, case-insensitively.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SplitContacts splits a board contact cell on "," and ";" after dropping
// any "cc: ..." tail, returning trimmed non-empty names.
func SplitContacts(raw string) []string {
	raw = CleanText(raw)
	if raw == "" {
		return nil
	}
	// "Jane Doe cc: someone@x" — everything from "cc:" on is noise.
	if idx := strings.Index(strings.ToLower(raw), "cc:"); idx >= 0 {
		raw = raw[:idx]
	}
	raw = strings.ReplaceAll(raw, ";", ",")
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
