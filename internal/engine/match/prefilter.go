package match

import (
	"fmt"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/talentops/go_mtb/internal/engine"
)

// MatchJob is the canonical view of one job dict entering the prefilter.
// Key-casing tolerance (jobId vs jobid) is resolved here, at the boundary.
type MatchJob struct {
	JobID    string
	Title    string
	Industry string
	Company  string
	Visa     string
	HRNotes  string
	Raw      map[string]any
}

// JobFromMap adapts a decoded job dict into a MatchJob.
func JobFromMap(raw map[string]any) MatchJob {
	return MatchJob{
		JobID:    engine.StringAt(raw, "job_id", "jobId", "jobid"),
		Title:    engine.StringAt(raw, "title", "position", "job_title"),
		Industry: engine.StringAt(raw, "industry_segment", "industry"),
		Company:  engine.StringAt(raw, "company"),
		Visa:     engine.StringAt(raw, "visa"),
		HRNotes:  engine.StringAt(raw, "hr_notes", "notes"),
		Raw:      raw,
	}
}

func (j MatchJob) text() string {
	return j.Title + " " + j.Industry
}

// Prefilter shrinks a large job set to a ranked shortlist for one
// candidate, ahead of any AI ranking. Hard disqualifiers short-circuit,
// soft inclusion gates scoring, and the heuristic score only orders the
// survivors.
type Prefilter struct {
	cfg engine.MatchConfig
	sim Similarity
}

// NewPrefilter builds a prefilter with the given policy. A nil similarity
// falls back to the default token-set ratio.
func NewPrefilter(cfg engine.MatchConfig, sim Similarity) *Prefilter {
	if sim == nil {
		sim = TokenSetRatio{}
	}
	return &Prefilter{cfg: cfg, sim: sim}
}

// parallelCutoff is the batch size above which per-job evaluation fans
// out; scoring is read-only per job so no synchronization is needed.
const parallelCutoff = 512

// ScoreKey is the field added to each returned job dict.
const ScoreKey = "heuristic_score"

// Filter evaluates every job for the candidate and returns the top
// targetSize job dicts by heuristic score, each carrying ScoreKey.
// targetSize <= 0 uses the configured default. When nothing passes the
// filters the first targetSize unfiltered jobs come back instead, so a
// non-empty input always yields a non-empty result.
func (p *Prefilter) Filter(resumeText string, overview engine.CandidateOverview, jobs []map[string]any, targetSize int) []map[string]any {
	if targetSize <= 0 {
		targetSize = p.cfg.TargetSize
	}
	if len(jobs) == 0 {
		return nil
	}

	verdicts := p.EvaluateBatch(resumeText, overview, jobs)

	type ranked struct {
		idx   int
		score float64
	}
	var passed []ranked
	for i, v := range verdicts {
		if v.Included {
			passed = append(passed, ranked{i, v.HeuristicScore})
		}
	}

	if len(passed) == 0 {
		// Fallback guarantee: better to hand the ranking stage something
		// than nothing.
		n := min(targetSize, len(jobs))
		out := make([]map[string]any, 0, n)
		for _, job := range jobs[:n] {
			out = append(out, withScore(job, 0))
		}
		return out
	}

	sort.SliceStable(passed, func(a, b int) bool { return passed[a].score > passed[b].score })
	if len(passed) > targetSize {
		passed = passed[:targetSize]
	}
	out := make([]map[string]any, 0, len(passed))
	for _, r := range passed {
		out = append(out, withScore(jobs[r.idx], r.score))
	}
	return out
}

// EvaluateBatch computes the per-job verdicts, fanning out for large
// batches.
func (p *Prefilter) EvaluateBatch(resumeText string, overview engine.CandidateOverview, jobs []map[string]any) []engine.MatchCandidate {
	resumeKW := keywordText(ExtractKeywords(resumeText))
	function := DetectFunction(resumeText)

	verdicts := make([]engine.MatchCandidate, len(jobs))
	if len(jobs) < parallelCutoff {
		for i, raw := range jobs {
			verdicts[i] = p.evaluate(resumeText, resumeKW, function, overview, JobFromMap(raw))
		}
		return verdicts
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, raw := range jobs {
		i, raw := i, raw
		g.Go(func() error {
			verdicts[i] = p.evaluate(resumeText, resumeKW, function, overview, JobFromMap(raw))
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return verdicts
}

// keywordText flattens a keyword set into one comparison string for the
// fuzzy soft-inclusion test.
func keywordText(kw map[string]bool) string {
	words := make([]string, 0, len(kw))
	for w := range kw {
		words = append(words, w)
	}
	sort.Strings(words)
	return strings.Join(words, " ")
}

func (p *Prefilter) evaluate(resumeText, resumeKW, function string, overview engine.CandidateOverview, job MatchJob) engine.MatchCandidate {
	mc := engine.MatchCandidate{JobID: job.JobID}

	if reasons := p.hardDisqualifiers(resumeText, overview, job); len(reasons) > 0 {
		mc.ExclusionReasons = reasons
		return mc
	}
	if !p.softInclude(resumeKW, function, job) {
		mc.ExclusionReasons = []string{"no industry, role, fuzzy or function match"}
		return mc
	}

	mc.Included = true
	mc.HeuristicScore = p.score(resumeText, overview, job)
	return mc
}

// --- hard disqualifiers ---

var citizenRequiredRe = regexp.MustCompile(`(?i)(us\s+citizen|no\s+visas?\b|no\s+sponsorship|citizens?\s+only)`)
var citizenHintRe = regexp.MustCompile(`(?i)\b(us\s+citizen|u\.s\.\s+citizen|citizenship|citizen|green\s*card|permanent\s+resident)\b`)
var citizenNegationRe = regexp.MustCompile(`(?i)(non.?citizen|not\s+a\s+(us\s+)?citizen|needs?\s+sponsorship|requires?\s+sponsorship)`)

// degreeRequiredRe catches non-negotiable degree demands in HR notes, e.g.
// "BS in Mining Engineering required", "must have MBA".
var degreeRequiredRe = regexp.MustCompile(`(?i)\b(bachelor'?s?|bs|ba|master'?s?|ms|mba|phd)\b[^.;]{0,60}\b(required|must)\b|\b(must\s+have|requires?)\b[^.;]{0,30}\b(bachelor'?s?|bs|ba|master'?s?|ms|mba|phd)\b`)

var formerEmployeeRe = regexp.MustCompile(`(?i)(no\s+former\s+employees?|no\s+rehires?|former\s+employees?\s+not|will\s+not\s+rehire)`)

func (p *Prefilter) hardDisqualifiers(resumeText string, overview engine.CandidateOverview, job MatchJob) []string {
	var reasons []string

	jobVisaText := job.Visa + " " + job.HRNotes
	if citizenRequiredRe.MatchString(jobVisaText) && !citizenshipSatisfied(overview.CitizenshipHint) {
		reasons = append(reasons, "job requires US citizenship / no visa sponsorship")
	}

	if m := degreeRequiredRe.FindStringSubmatch(job.HRNotes); m != nil {
		degree := firstGroup(m)
		if degree != "" && !containsDegree(resumeText, degree) {
			reasons = append(reasons, fmt.Sprintf("required degree %q not found in resume", degree))
		}
	}

	if formerEmployeeRe.MatchString(job.HRNotes) && job.Company != "" &&
		strings.Contains(strings.ToLower(resumeText), strings.ToLower(job.Company)) {
		reasons = append(reasons, fmt.Sprintf("prior employment conflict with %s", job.Company))
	}
	return reasons
}

// citizenshipSatisfied reads the overview hint. A negated hint
// ("non-citizen, needs sponsorship") never satisfies the gate even
// though it contains the word "citizen".
func citizenshipSatisfied(hint string) bool {
	return !citizenNegationRe.MatchString(hint) && citizenHintRe.MatchString(hint)
}

func firstGroup(m []string) string {
	for _, g := range m[1:] {
		g = strings.ToLower(strings.TrimSpace(g))
		switch g {
		case "", "required", "must", "must have", "requires", "require":
			continue
		}
		return g
	}
	return ""
}

// degreeAliases lets "BS" in notes match "Bachelor of Science" on a resume.
var degreeAliases = map[string][]string{
	"bs":       {"bs", "b.s", "bachelor"},
	"ba":       {"ba", "b.a", "bachelor"},
	"bachelor": {"bachelor", "bs", "b.s", "ba", "b.a"},
	"ms":       {"ms", "m.s", "master"},
	"master":   {"master", "ms", "m.s"},
	"mba":      {"mba", "m.b.a"},
	"phd":      {"phd", "ph.d", "doctorate"},
}

func containsDegree(resumeText, degree string) bool {
	degree = strings.TrimSuffix(degree, "'s")
	// "bachelors" → "bachelor", but keep short forms like "bs"/"ms" intact.
	if len(degree) > 3 {
		degree = strings.TrimSuffix(degree, "s")
	}
	aliases, ok := degreeAliases[degree]
	if !ok {
		aliases = []string{degree}
	}
	for _, a := range aliases {
		// Whole words only: "bs" must not fire inside "jobs" or "absent".
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(a) + `(?:'?s)?\b`)
		if re.MatchString(resumeText) {
			return true
		}
	}
	return false
}

// --- soft inclusion ---

func (p *Prefilter) softInclude(resumeKW, function string, job MatchJob) bool {
	if containsAny(job.text(), p.cfg.IndustryKeywords) {
		return true
	}
	if containsAny(job.Title, p.cfg.RoleKeywords) {
		return true
	}
	if p.sim.Ratio(resumeKW, job.text()) >= p.cfg.FuzzyThreshold {
		return true
	}
	if function == "sales" && containsAny(job.Title, p.cfg.SalesTitleKeywords) {
		return true
	}
	return false
}

// --- heuristic scoring ---

var managementTitleRe = regexp.MustCompile(`(?i)\b(manager|management|director|superintendent|vp|vice\s+president|head\s+of)\b`)
var engineeringTitleRe = regexp.MustCompile(`(?i)\bengineer(ing)?\b`)

func (p *Prefilter) score(resumeText string, overview engine.CandidateOverview, job MatchJob) float64 {
	score := p.sim.Ratio(candidateTitle(overview, resumeText), job.Title) * p.cfg.TitleSimilarityWeight

	if containsAny(job.text(), p.cfg.IndustryKeywords) {
		score += p.cfg.IndustryBonus
	}
	score += float64(countMatches(resumeText, job.text()+" "+job.HRNotes, p.cfg.ToolKeywords, p.cfg.MaxToolMatches)) * p.cfg.ToolBonus
	if managementTitleRe.MatchString(job.Title) {
		score += p.cfg.ManagementBonus
	}
	if engineeringTitleRe.MatchString(job.Title) {
		score += p.cfg.EngineeringBonus
	}
	return score
}

// candidateTitle prefers the most recent role title; resume text is the
// last resort.
func candidateTitle(overview engine.CandidateOverview, resumeText string) string {
	if len(overview.RecentRoles) > 0 && overview.RecentRoles[0].Title != "" {
		return overview.RecentRoles[0].Title
	}
	return resumeText
}

func withScore(job map[string]any, score float64) map[string]any {
	out := make(map[string]any, len(job)+1)
	for k, v := range job {
		out[k] = v
	}
	out[ScoreKey] = score
	return out
}
