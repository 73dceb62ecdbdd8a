package engine

import "testing"

func TestNormalizeMTBDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"8/29/25 0:00", "2025-08-29 00:00:00"},
		{"8/29/25", "2025-08-29 00:00:00"},
		{"12/1/2024 14:30", "2024-12-01 14:30:00"},
		{"1/5/99", "2099-01-05 00:00:00"}, // 2-digit years always get 2000
		{"13/40/99", ""},                  // no 13th month, no 40th day
		{"2/30/25", ""},                   // February rolls over
		{"0/10/25", ""},
		{"8/29/25 25:00", ""}, // bad hour
		{"received last week", ""},
		{"", ""},
		{"Received 8/29/25 0:00 via email", "2025-08-29 00:00:00"}, // embedded
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeMTBDate(tt.raw); got != tt.want {
				t.Errorf("NormalizeMTBDate(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
