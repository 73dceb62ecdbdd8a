package engine

import (
	"strconv"
	"testing"
)

func intp(v int) *int { return &v }

func TestParseSalary(t *testing.T) {
	p := NewSalaryParser(DefaultConfig())

	tests := []struct {
		raw       string
		min, max  *int
		currency  string
		period    string
		qualifier string
		hasPlus   bool
		isMaxCap  bool
	}{
		{"65-110K DOE", intp(65000), intp(110000), "USD", "annual", "DOE", false, false},
		{"$41-42/hr", intp(41), intp(42), "USD", "hourly", "", false, false},
		{"$120,000", intp(120000), intp(120000), "USD", "annual", "", false, false},
		{"120", intp(120000), intp(120000), "USD", "annual", "", false, false},
		{"95K+", intp(95000), intp(95000), "USD", "annual", "", true, false},
		{"110K max", intp(110000), intp(110000), "USD", "annual", "", false, true},
		{"80k plus bonus", intp(80000), intp(80000), "USD", "annual", "", true, false},
		{"€70-90K", intp(70000), intp(90000), "EUR", "annual", "", false, false},
		{"£55,000", intp(55000), intp(55000), "GBP", "annual", "", false, false},
		{"90-120K CAD", intp(90000), intp(120000), "CAD", "annual", "", false, false},
		{"100 to 130K DOQ", intp(100000), intp(130000), "USD", "annual", "DOQ", false, false},
		{"110–85K", intp(85000), intp(110000), "USD", "annual", "", false, false}, // sorted ascending
		{"25 per hour", intp(25), intp(25), "USD", "hourly", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := p.Parse(tt.raw)
			if !eqIntp(got.Min, tt.min) || !eqIntp(got.Max, tt.max) {
				t.Errorf("Parse(%q) range = %s-%s, want %s-%s",
					tt.raw, fmtIntp(got.Min), fmtIntp(got.Max), fmtIntp(tt.min), fmtIntp(tt.max))
			}
			if got.Currency != tt.currency {
				t.Errorf("Parse(%q) currency = %q, want %q", tt.raw, got.Currency, tt.currency)
			}
			if got.Period != tt.period {
				t.Errorf("Parse(%q) period = %q, want %q", tt.raw, got.Period, tt.period)
			}
			if got.Qualifier != tt.qualifier {
				t.Errorf("Parse(%q) qualifier = %q, want %q", tt.raw, got.Qualifier, tt.qualifier)
			}
			if got.HasPlus != tt.hasPlus {
				t.Errorf("Parse(%q) hasPlus = %v, want %v", tt.raw, got.HasPlus, tt.hasPlus)
			}
			if got.IsMaxCap != tt.isMaxCap {
				t.Errorf("Parse(%q) isMaxCap = %v, want %v", tt.raw, got.IsMaxCap, tt.isMaxCap)
			}
			if got.Confidence <= 0 {
				t.Errorf("Parse(%q) confidence = %v, want > 0", tt.raw, got.Confidence)
			}
		})
	}
}

func TestParseSalary_Unparseable(t *testing.T) {
	p := NewSalaryParser(DefaultConfig())
	for _, raw := range []string{"", "   ", "DOE", "negotiable", "competitive"} {
		got := p.Parse(raw)
		if got.Min != nil || got.Max != nil {
			t.Errorf("Parse(%q) = %s-%s, want nil range", raw, fmtIntp(got.Min), fmtIntp(got.Max))
		}
		if got.Confidence != 0 {
			t.Errorf("Parse(%q) confidence = %v, want 0", raw, got.Confidence)
		}
	}
}

func TestSalaryRange_USDAnnual(t *testing.T) {
	cfg := DefaultConfig()
	p := NewSalaryParser(cfg)

	tests := []struct {
		raw      string
		min, max int
	}{
		{"$41-42/hr", 85280, 87360}, // 41×2080, 42×2080
		{"65-110K", 65000, 110000},
		{"€100K", 108000, 108000},
		{"£100K", 127000, 127000},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			min, max, ok := p.Parse(tt.raw).USDAnnual(cfg)
			if !ok {
				t.Fatalf("USDAnnual(%q) not ok", tt.raw)
			}
			if min != tt.min || max != tt.max {
				t.Errorf("USDAnnual(%q) = %d-%d, want %d-%d", tt.raw, min, max, tt.min, tt.max)
			}
		})
	}

	if _, _, ok := p.Parse("TBD").USDAnnual(cfg); ok {
		t.Error("USDAnnual on empty range should not be ok")
	}
}

func TestScanForSalary(t *testing.T) {
	p := NewSalaryParser(DefaultConfig())

	r, ok := p.ScanForSalary("Growing plant, pays $95,000 - $120,000 with relocation help.")
	if !ok {
		t.Fatal("expected salary fragment to be found")
	}
	if r.Min == nil || *r.Min != 95000 || r.Max == nil || *r.Max != 120000 {
		t.Errorf("scan = %s-%s, want 95000-120000", fmtIntp(r.Min), fmtIntp(r.Max))
	}

	if _, ok := p.ScanForSalary("Great culture, strong 401k match, no numbers here."); ok {
		t.Error("401k must not be read as a salary")
	}

	if _, ok := p.ScanForSalary(""); ok {
		t.Error("empty text must not yield a salary")
	}
}

func eqIntp(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtIntp(v *int) string {
	if v == nil {
		return "<nil>"
	}
	return strconv.Itoa(*v)
}
