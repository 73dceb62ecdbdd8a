package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// SalaryParser turns free-text salary cells ("65-110K DOE", "$41-42/hr",
// "€70.000 max") into a structured SalaryRange. It never fails: text it
// cannot read comes back as an empty range with Confidence 0.
type SalaryParser struct {
	cfg Config
}

func NewSalaryParser(cfg Config) *SalaryParser {
	return &SalaryParser{cfg: cfg}
}

var (
	salaryNumRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([kK])?`)
	maxCapRe     = regexp.MustCompile(`(?i)\bmax\b`)
	doeRe        = regexp.MustCompile(`(?i)\bdoe\b`)
	doqRe        = regexp.MustCompile(`(?i)\bdoq\b`)
	plusWordRe   = regexp.MustCompile(`(?i)\bplus\b`)
	hourlyMarkRe = regexp.MustCompile(`(?i)(/\s*ho?u?r\b|\bper\s+hour\b|\bhourly\b|\bph\b)`)
)

// Parse parses raw salary text. Min/Max keep the detected currency and
// period; annualization and USD conversion happen in USDAnnual.
//
// Bare-number rule: in annual period a component below 1000 without an
// explicit K suffix is read as truncated thousands and multiplied by 1000
// ("65-110K" → 65000-110000, "120" → 120000). Hourly figures are exempt.
func (p *SalaryParser) Parse(raw string) SalaryRange {
	out := SalaryRange{RawText: CleanText(raw)}
	if out.RawText == "" {
		return out
	}

	text := out.RawText
	out.Currency = detectCurrency(text)
	out.Period = "annual"
	if hourlyMarkRe.MatchString(text) {
		out.Period = "hourly"
	}

	if doeRe.MatchString(text) {
		out.Qualifier = "DOE"
	} else if doqRe.MatchString(text) {
		out.Qualifier = "DOQ"
	}
	if strings.Contains(text, "+") || plusWordRe.MatchString(text) {
		out.HasPlus = true
	}
	if maxCapRe.MatchString(text) {
		out.IsMaxCap = true
	}

	vals := p.extractAmounts(text, out.Period)
	switch len(vals) {
	case 0:
		// All-null on unparseable input; qualifiers without a number are
		// not worth keeping.
		return SalaryRange{RawText: out.RawText}
	case 1:
		v := vals[0]
		out.Min, out.Max = &v, &v
		out.Confidence = 0.9
	default:
		lo, hi := vals[0], vals[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		out.Min, out.Max = &lo, &hi
		out.Confidence = 1.0
	}
	return out
}

// extractAmounts pulls up to two numeric components out of the text,
// applying K expansion and the bare-number rule per component.
func (p *SalaryParser) extractAmounts(text, period string) []int {
	// Commas are thousands separators, currency symbols are noise.
	clean := strings.NewReplacer(",", "", "$", " ", "€", " ", "£", " ").Replace(text)
	clean = NormalizeDashes(clean)

	matches := salaryNumRe.FindAllStringSubmatch(clean, 2)
	var out []int
	for _, m := range matches {
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		hasK := m[2] != ""
		if hasK {
			f *= 1000
		} else if period == "annual" && f < 1000 {
			// Truncated thousands, see Parse doc.
			f *= 1000
		}
		out = append(out, int(math.Round(f)))
	}
	return out
}

func detectCurrency(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(text, "€") || strings.Contains(lower, "eur"):
		return "EUR"
	case strings.Contains(text, "£") || strings.Contains(lower, "gbp"):
		return "GBP"
	case strings.Contains(lower, "c$") || strings.Contains(lower, "cad"):
		return "CAD"
	case strings.Contains(lower, "a$") || strings.Contains(lower, "aud"):
		return "AUD"
	default:
		return "USD"
	}
}

// USDAnnual converts the range into annual USD for cross-job comparison:
// hourly figures × HourlyAnnualFactor, then the fixed currency table.
// ok is false when the range has no values or an unknown currency.
func (s SalaryRange) USDAnnual(cfg Config) (min, max int, ok bool) {
	if s.Min == nil || s.Max == nil {
		return 0, 0, false
	}
	rate, known := cfg.USDRates[s.Currency]
	if !known {
		return 0, 0, false
	}
	factor := 1
	if s.Period == "hourly" {
		factor = cfg.HourlyAnnualFactor
	}
	min = int(math.Round(float64(*s.Min*factor) * rate))
	max = int(math.Round(float64(*s.Max*factor) * rate))
	return min, max, true
}

// salaryTextRe matches salary-looking fragments inside longer free text:
// "$120,000", "95K", "80-100k".
var salaryTextRe = regexp.MustCompile(`(?i)(\$\s*[\d,]+(?:\.\d+)?\s*[k]?(?:\s*[-–—]\s*\$?\s*[\d,]+(?:\.\d+)?\s*[k]?)?|\b\d{2,3}\s*[k]\b(?:\s*[-–—]\s*\d{2,3}\s*[k]\b)?)`)

// ScanForSalary looks for the first salary-like fragment in supplementary
// free text. Used only when no explicit salary field exists, so stray
// numbers elsewhere in the notes are never picked up.
func (p *SalaryParser) ScanForSalary(freeText string) (SalaryRange, bool) {
	frag := ""
	for _, m := range salaryTextRe.FindAllString(freeText, -1) {
		// "401k" is a benefit, not a salary.
		if strings.EqualFold(CleanText(m), "401k") {
			continue
		}
		frag = m
		break
	}
	if frag == "" {
		return SalaryRange{}, false
	}
	r := p.Parse(frag)
	return r, r.Confidence > 0
}
