package engine

import (
	"regexp"
	"strings"
)

// placeholderRe matches board placeholder locations like "Open (NE)" or
// "Flexible (SE)" — a label plus a short upper-case region code.
var placeholderRe = regexp.MustCompile(`^(.*\S)\s*\(([A-Z]{1,4})\)$`)

// NormalizeLocation reconciles the authoritative tracking-board location
// against the AI-extracted fallback, field by field. Placeholder city
// values contribute a region hint instead of a real city.
func NormalizeLocation(authoritative, fallback LocationInfo) LocationInfo {
	pick := func(auth, fb string) string {
		if auth = CleanText(auth); auth != "" {
			return auth
		}
		return CleanText(fb)
	}

	out := LocationInfo{
		City:    pick(authoritative.City, fallback.City),
		State:   pick(authoritative.State, fallback.State),
		Country: pick(authoritative.Country, fallback.Country),
	}

	if m := placeholderRe.FindStringSubmatch(out.City); m != nil {
		out.City = strings.TrimSpace(m[1])
		out.RegionHint = m[2]
	}
	return out
}
