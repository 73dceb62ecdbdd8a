package engine

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Merger builds canonical JobRecords by reconciling AI-extracted job dicts
// against authoritative tracking-board rows.
type Merger struct {
	cfg    Config
	salary *SalaryParser
}

func NewMerger(cfg Config) *Merger {
	return &Merger{cfg: cfg, salary: NewSalaryParser(cfg)}
}

// MergeInput is one (AI record, board row) pair plus supplementary text.
type MergeInput struct {
	AI           AIRecord
	Row          MTBRow
	HRNotes      string
	FreeText     string
	ForceInclude bool
}

// Optimize merges one AI record with its authoritative row into a single
// canonical JobRecord and runs the validation pass. Tabular values win
// over AI values wherever both exist. Never returns an error: problems
// land in Validation and the record is emitted anyway.
func (m *Merger) Optimize(ai AIRecord, row MTBRow, jobID, hrNotes, freeText string) JobRecord {
	rec := JobRecord{
		JobID:           CleanText(jobID),
		Company:         firstNonEmpty(row.Company, ai.Company),
		Title:           firstNonEmpty(row.Position, ai.Title),
		IndustrySegment: firstNonEmpty(row.IndustrySegment, ai.Industry),
		Visa:            row.Visa,
		SourceFile:      ai.SourceFile,
	}
	rec.Location = NormalizeLocation(
		LocationInfo{City: row.City, State: row.State, Country: row.Country},
		ai.Location,
	)

	// Salary: explicit board cell, then AI text, then a free-text scan.
	// The scan only runs when no explicit field exists so stray numbers
	// in the notes cannot override real data. A bonus clause inside the
	// AI salary text belongs to the bonus, not the salary.
	aiSalary := ai.SalaryText
	if idx := strings.Index(strings.ToLower(aiSalary), "bonus"); idx >= 0 {
		aiSalary = aiSalary[:idx]
	}
	switch {
	case row.Salary != "":
		rec.Salary = m.salary.Parse(row.Salary)
	case CleanText(aiSalary) != "":
		rec.Salary = m.salary.Parse(aiSalary)
	default:
		if r, ok := m.salary.ScanForSalary(freeText); ok {
			rec.Salary = r
		}
	}

	// Bonus: explicit board cell, else the tail of the AI salary text
	// after a "bonus" marker ("120K + 20% bonus" style).
	if row.Bonus != "" {
		rec.Bonus = ParsePercentage(row.Bonus)
	} else if idx := strings.Index(strings.ToLower(ai.SalaryText), "bonus"); idx >= 0 {
		tail := ai.SalaryText[idx+len("bonus"):]
		if CleanText(tail) == "" {
			// "... 20% bonus" — the expression precedes the marker.
			tail = ai.SalaryText[:idx]
		}
		rec.Bonus = ParsePercentage(tail)
	}
	rec.ConditionalFee = ParsePercentage(row.ConditionalFee)

	rec.ReceivedDate = NormalizeMTBDate(row.Received)

	rec.Contacts = Contacts{
		HR:     CleanText(row.HR),
		CM:     CleanText(row.CM),
		HRList: SplitContacts(row.HR),
		CMList: SplitContacts(row.CM),
	}

	rec.HRNotes = firstNonEmpty(hrNotes, row.Notes)
	if row.PipelineCount != "" {
		if n, err := strconv.Atoi(row.PipelineCount); err == nil {
			rec.PipelineCount = &n
		}
	}
	rec.Internal = parseBoolCell(row.Internal)

	rec.Validation = m.validate(rec, row)
	return rec
}

func (m *Merger) validate(rec JobRecord, row MTBRow) Validation {
	var v Validation
	if rec.JobID == "" {
		v.Errors = append(v.Errors, "missing job id")
	}
	if rec.Company == "" {
		v.Errors = append(v.Errors, "missing company")
	}
	if rec.Title == "" {
		v.Errors = append(v.Errors, "missing title")
	}
	if rec.Location.Empty() {
		v.Warnings = append(v.Warnings, "location is empty")
	}
	if row.Received != "" && rec.ReceivedDate == "" {
		v.Warnings = append(v.Warnings, fmt.Sprintf("unparseable received date %q", row.Received))
	}
	if rec.Salary.Min != nil && rec.Salary.Max != nil && *rec.Salary.Min > *rec.Salary.Max {
		v.Warnings = append(v.Warnings, "salary min exceeds max")
	}
	for _, check := range []struct {
		name string
		pr   PercentageRange
	}{{"bonus", rec.Bonus}, {"conditional fee", rec.ConditionalFee}} {
		name, pr := check.name, check.pr
		for _, f := range []*float64{pr.MinFraction, pr.MaxFraction} {
			if f != nil && (*f < 0 || *f > 1) {
				v.Warnings = append(v.Warnings, fmt.Sprintf("%s fraction %g outside [0,1]", name, *f))
				break
			}
		}
	}
	return v
}

// OptimizeBatch reconciles the batch's job ids, merges every surviving
// input and reports counts so callers can flag imperfect records for
// review instead of halting the run.
func (m *Merger) OptimizeBatch(inputs []MergeInput) ([]JobRecord, BatchReport) {
	report := BatchReport{RunID: uuid.NewString(), Total: len(inputs)}

	rows := make([]ReconcileRow, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, ReconcileRow{ID: in.Row.JobID, CM: in.Row.CM, ForceInclude: in.ForceInclude})
	}
	ids, excluded := ReconcileRows(rows, m.cfg.ExclusionMarker)
	report.Excluded = excluded

	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}

	var out []JobRecord
	for _, in := range inputs {
		id := NormalizeJobID(in.Row.JobID)
		if !keep[id] {
			continue
		}
		keep[id] = false // job ids are unique within a reconciled batch
		rec := m.Optimize(in.AI, in.Row, id, in.HRNotes, in.FreeText)
		if len(rec.Validation.Errors) > 0 {
			report.Errored++
			slog.Debug("record has validation errors",
				slog.String("job_id", id),
				slog.String("title", Truncate(rec.Title, 60)),
				slog.Any("errors", rec.Validation.Errors))
		}
		if len(rec.Validation.Warnings) > 0 {
			report.Warned++
		}
		out = append(out, rec)
	}
	return out, report
}

// Emit flattens the record into the snake_case dict consumed by storage
// and matching. Keys whose value is null or an empty string are dropped;
// explicit 0 and false survive.
func (r JobRecord) Emit() map[string]any {
	out := make(map[string]any, 32)
	putStr := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}

	putStr("job_id", r.JobID)
	putStr("company", r.Company)
	putStr("title", r.Title)
	putStr("industry_segment", r.IndustrySegment)
	putStr("city", r.Location.City)
	putStr("state", r.Location.State)
	putStr("country", r.Location.Country)
	putStr("region_hint", r.Location.RegionHint)

	if r.Salary.Min != nil {
		out["salary_min"] = *r.Salary.Min
	}
	if r.Salary.Max != nil {
		out["salary_max"] = *r.Salary.Max
	}
	putStr("salary_currency", r.Salary.Currency)
	putStr("salary_period", r.Salary.Period)
	putStr("salary_qualifier", r.Salary.Qualifier)
	putStr("salary_raw", r.Salary.RawText)
	out["salary_has_plus"] = r.Salary.HasPlus
	out["salary_is_max_cap"] = r.Salary.IsMaxCap
	out["salary_confidence"] = r.Salary.Confidence

	if r.Bonus.MinFraction != nil {
		out["bonus_min"] = *r.Bonus.MinFraction
	}
	if r.Bonus.MaxFraction != nil {
		out["bonus_max"] = *r.Bonus.MaxFraction
	}
	putStr("bonus_raw", r.Bonus.RawText)
	if r.ConditionalFee.MinFraction != nil {
		out["conditional_fee_min"] = *r.ConditionalFee.MinFraction
	}
	if r.ConditionalFee.MaxFraction != nil {
		out["conditional_fee_max"] = *r.ConditionalFee.MaxFraction
	}
	putStr("conditional_fee_raw", r.ConditionalFee.RawText)

	putStr("received_date", r.ReceivedDate)
	putStr("hr", r.Contacts.HR)
	putStr("cm", r.Contacts.CM)
	if len(r.Contacts.HRList) > 0 {
		out["hr_list"] = r.Contacts.HRList
	}
	if len(r.Contacts.CMList) > 0 {
		out["cm_list"] = r.Contacts.CMList
	}
	putStr("visa", r.Visa)
	putStr("hr_notes", r.HRNotes)
	if r.PipelineCount != nil {
		out["pipeline_count"] = *r.PipelineCount
	}
	if r.Internal != nil {
		out["internal"] = *r.Internal
	}
	putStr("source_file", r.SourceFile)

	if len(r.Validation.Errors) > 0 {
		out["validation_errors"] = r.Validation.Errors
	}
	if len(r.Validation.Warnings) > 0 {
		out["validation_warnings"] = r.Validation.Warnings
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = CleanText(v); v != "" {
			return v
		}
	}
	return ""
}

func parseBoolCell(s string) *bool {
	switch strings.ToLower(CleanText(s)) {
	case "yes", "y", "true", "1":
		v := true
		return &v
	case "no", "n", "false", "0":
		v := false
		return &v
	}
	return nil
}
