package engine

import (
	"strconv"
	"strings"
)

// MTBRow is one authoritative Master Tracking Board row with its columns
// resolved to canonical names. Build it with RowFromMap so column-name
// tolerance lives in exactly one place.
type MTBRow struct {
	JobID           string
	Company         string
	Position        string
	IndustrySegment string
	City            string
	State           string
	Country         string
	Salary          string
	Bonus           string
	ConditionalFee  string
	Received        string
	CM              string
	HR              string
	Visa            string
	Internal        string
	ClientRating    string
	PipelineCount   string
	PipelineNames   string
	Include         string
	Notes           string
}

// RowFromMap maps a raw header→cell row onto MTBRow. Header matching is
// case-insensitive and ignores spaces, so "Job ID", "JobID" and "jobid"
// all land in the same field.
func RowFromMap(raw map[string]string) MTBRow {
	get := func(names ...string) string {
		for _, n := range names {
			for k, v := range raw {
				if foldKey(k) == foldKey(n) {
					return CleanText(v)
				}
			}
		}
		return ""
	}
	return MTBRow{
		JobID:           get("JobID", "Job ID"),
		Company:         get("Company"),
		Position:        get("Position"),
		IndustrySegment: get("Industry/Segment", "Industry"),
		City:            get("City"),
		State:           get("State"),
		Country:         get("Country"),
		Salary:          get("Salary"),
		Bonus:           get("Bonus"),
		ConditionalFee:  get("Conditional Fee"),
		Received:        get("Received (m/d/y)", "Received"),
		CM:              get("CM"),
		HR:              get("HR/HM", "HR"),
		Visa:            get("Visa"),
		Internal:        get("Internal"),
		ClientRating:    get("Client Rating"),
		PipelineCount:   get("Pipeline #", "Pipeline Count"),
		PipelineNames:   get("Pipeline Candidates"),
		Include:         get("Force Include", "Include"),
		Notes:           get("Notes"),
	}
}

// ForceIncluded reports whether the row's include-flag column overrides
// the CM exclusion marker.
func (r MTBRow) ForceIncluded() bool {
	b := parseBoolCell(r.Include)
	return b != nil && *b
}

func foldKey(k string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(k)), " ", "")
}

// AIRecord is the canonical view of one AI-extracted job dict. Key
// variants (job_title vs position, work_eligibility_location vs legacy
// location.*) are resolved here at the boundary, never downstream.
type AIRecord struct {
	Title       string
	Company     string
	Industry    string
	SalaryText  string
	Location    LocationInfo
	Eligibility string
	SourceFile  string
}

// AIRecordFromMap adapts a decoded JSON job dict into an AIRecord.
func AIRecordFromMap(raw map[string]any) AIRecord {
	rec := AIRecord{
		Title:       StringAt(raw, "job_title", "position", "title"),
		Company:     StringAt(raw, "company", "company_name"),
		Industry:    StringAt(raw, "industry", "industry_segment", "segment"),
		SalaryText:  StringAt(raw, "salaryRange", "salary_range", "salary"),
		Eligibility: StringAt(raw, "work_eligibility_location", "work_eligibility"),
		SourceFile:  StringAt(raw, "source_file", "sourceFile"),
	}

	// Current extracts carry a flat eligibility string; legacy ones carry
	// a nested location object.
	if loc, ok := raw["location"].(map[string]any); ok {
		rec.Location = LocationInfo{
			City:    StringAt(loc, "city"),
			State:   StringAt(loc, "state"),
			Country: StringAt(loc, "country"),
		}
	} else if rec.Eligibility != "" {
		rec.Location = splitEligibility(rec.Eligibility)
	}
	return rec
}

// splitEligibility reads "City, ST" / "City, ST, Country" strings.
func splitEligibility(s string) LocationInfo {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	var loc LocationInfo
	switch {
	case len(parts) >= 3:
		loc.City, loc.State, loc.Country = parts[0], parts[1], parts[2]
	case len(parts) == 2:
		loc.City, loc.State = parts[0], parts[1]
	case len(parts) == 1:
		loc.City = parts[0]
	}
	return loc
}

// StringAt resolves the first non-empty string value among the given key
// variants, case-insensitively. Numeric JSON values are stringified.
func StringAt(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		for k, v := range raw {
			if !strings.EqualFold(k, key) {
				continue
			}
			switch t := v.(type) {
			case string:
				if s := CleanText(t); s != "" {
					return s
				}
			case float64:
				return strconv.FormatFloat(t, 'f', -1, 64)
			}
		}
	}
	return ""
}
