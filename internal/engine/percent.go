package engine

import (
	"regexp"
	"strconv"
	"strings"
)

var percentWordRe = regexp.MustCompile(`(?i)\b(percent|pct)\b`)

// ParsePercentage parses bonus/fee expressions like "25%", "1-4%", "0.25"
// or "1/3" into decimal fractions. Never fails; unreadable components are
// simply absent from the result.
//
// The component rule is asymmetric on purpose: a component with "%" is
// divided by 100, one with "/" is read as a fraction a/b, one with a
// decimal point is already a fraction, and a bare integer is a percent.
// That is what makes "1-4%" come out as (0.01, 0.04) instead of (1.0, 0.04).
func ParsePercentage(raw string) PercentageRange {
	out := PercentageRange{RawText: CleanText(raw)}
	if out.RawText == "" {
		return out
	}

	text := percentWordRe.ReplaceAllString(out.RawText, "%")
	var vals []float64
	for _, comp := range SplitRange(text) {
		if v, ok := parsePercentComponent(comp); ok {
			vals = append(vals, v)
		}
	}

	switch len(vals) {
	case 0:
		return out
	case 1:
		out.MinFraction, out.MaxFraction = &vals[0], &vals[0]
	default:
		lo, hi := vals[0], vals[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		out.MinFraction, out.MaxFraction = &lo, &hi
	}
	return out
}

func parsePercentComponent(comp string) (float64, bool) {
	comp = strings.TrimSpace(comp)
	switch {
	case strings.Contains(comp, "%"):
		n, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(comp, "%", "")), 64)
		if err != nil {
			return 0, false
		}
		return n / 100, true

	case strings.Contains(comp, "/"):
		parts := strings.SplitN(comp, "/", 2)
		a, errA := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		b, errB := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errA != nil || errB != nil || b == 0 {
			return 0, false
		}
		return a / b, true

	case strings.Contains(comp, "."):
		n, err := strconv.ParseFloat(comp, 64)
		if err != nil {
			return 0, false
		}
		return n, true

	default:
		n, err := strconv.ParseFloat(comp, 64)
		if err != nil {
			return 0, false
		}
		return n / 100, true
	}
}
