package engine

// --- Canonical record types ---

// SalaryRange is a structured salary parsed from free text.
// Min/Max stay in the original currency and period; use USDAnnual for
// cross-job comparison.
type SalaryRange struct {
	Min        *int    `json:"min,omitempty"`
	Max        *int    `json:"max,omitempty"`
	Currency   string  `json:"currency,omitempty"` // USD, EUR, GBP, CAD, AUD
	Period     string  `json:"period,omitempty"`   // "annual" or "hourly"
	HasPlus    bool    `json:"has_plus,omitempty"`
	IsMaxCap   bool    `json:"is_max_cap,omitempty"`
	Qualifier  string  `json:"qualifier,omitempty"` // "DOE", "DOQ" or ""
	RawText    string  `json:"raw_text,omitempty"`
	Confidence float64 `json:"confidence"`
}

// PercentageRange holds a bonus/fee percentage as decimal fractions
// (0.25 means 25%).
type PercentageRange struct {
	RawText     string   `json:"raw_text,omitempty"`
	MinFraction *float64 `json:"min_fraction,omitempty"`
	MaxFraction *float64 `json:"max_fraction,omitempty"`
}

// LocationInfo is a reconciled job location. RegionHint comes from
// placeholder values like "Open (NE)".
type LocationInfo struct {
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	RegionHint string `json:"region_hint,omitempty"`
}

// Empty reports whether no location field is set at all.
func (l LocationInfo) Empty() bool {
	return l.City == "" && l.State == "" && l.Country == "" && l.RegionHint == ""
}

// Contacts holds the HR and CM contact fields from the tracking board.
type Contacts struct {
	HR     string   `json:"hr,omitempty"`
	CM     string   `json:"cm,omitempty"`
	HRList []string `json:"hr_list,omitempty"`
	CMList []string `json:"cm_list,omitempty"`
}

// Validation collects non-fatal diagnostics attached to a merged record.
// Errors mean required identity fields are missing; the record is still
// emitted and the caller decides whether to reject it.
type Validation struct {
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// JobRecord is the canonical merged representation of one requisition:
// AI-extracted text reconciled against the authoritative tracking-board row.
// Created once per (AI record, row) pair and immutable afterwards.
type JobRecord struct {
	JobID           string          `json:"job_id"`
	Company         string          `json:"company,omitempty"`
	Title           string          `json:"title,omitempty"`
	IndustrySegment string          `json:"industry_segment,omitempty"`
	Location        LocationInfo    `json:"location"`
	Salary          SalaryRange     `json:"salary"`
	Bonus           PercentageRange `json:"bonus"`
	ConditionalFee  PercentageRange `json:"conditional_fee"`
	ReceivedDate    string          `json:"received_date,omitempty"` // "2006-01-02 15:04:05", "" = unknown
	Contacts        Contacts        `json:"contacts"`
	Visa            string          `json:"visa,omitempty"`
	HRNotes         string          `json:"hr_notes,omitempty"`
	PipelineCount   *int            `json:"pipeline_count,omitempty"`
	Internal        *bool           `json:"internal,omitempty"`
	SourceFile      string          `json:"source_file,omitempty"`
	Validation      Validation      `json:"validation"`
}

// --- Candidate-side types ---

// RecentRole is one entry of a candidate's recent work history.
type RecentRole struct {
	Title     string `json:"title,omitempty"`
	Company   string `json:"company,omitempty"`
	DateRange string `json:"date_range,omitempty"`
	Location  string `json:"location,omitempty"`
}

// CandidateOverview is the AI-extracted summary of one resume, used for
// rule-based prefiltering ahead of any AI ranking.
type CandidateOverview struct {
	Name                 string       `json:"name,omitempty"`
	Location             string       `json:"location,omitempty"`
	CitizenshipHint      string       `json:"citizenship_hint,omitempty"`
	TotalYearsExperience float64      `json:"total_years_experience,omitempty"`
	RecentRoles          []RecentRole `json:"recent_roles,omitempty"`
}

// MatchCandidate is the transient per-(candidate, job) prefilter verdict.
// Not persisted; recomputed at match time.
type MatchCandidate struct {
	JobID            string   `json:"job_id"`
	HeuristicScore   float64  `json:"heuristic_score"`
	Included         bool     `json:"included"`
	ExclusionReasons []string `json:"exclusion_reasons,omitempty"`
}

// BatchReport summarises one merge run so callers can flag imperfect
// records for review instead of halting.
type BatchReport struct {
	RunID    string `json:"run_id"`
	Total    int    `json:"total"`
	Errored  int    `json:"errored"`
	Warned   int    `json:"warned"`
	Excluded int    `json:"excluded"`
}
