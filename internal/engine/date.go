package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var mtbDateRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})(?:\s+(\d{1,2}):(\d{2}))?`)

// NormalizeMTBDate parses the board's "m/d/y [h:mm]" received-date format
// into "2006-01-02 15:04:05". Two-digit years get 2000 added. Returns ""
// for anything unparseable or calendar-invalid ("13/40/99").
func NormalizeMTBDate(raw string) string {
	m := mtbDateRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}

	hour, minute := 0, 0
	if m[4] != "" {
		hour, _ = strconv.Atoi(m[4])
		minute, _ = strconv.Atoi(m[5])
	}
	if hour > 23 || minute > 59 {
		return ""
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	// time.Date silently rolls over out-of-range values; a roll-over means
	// the input was not a real calendar date.
	if int(t.Month()) != month || t.Day() != day || t.Year() != year {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", year, month, day, hour, minute, 0)
}
