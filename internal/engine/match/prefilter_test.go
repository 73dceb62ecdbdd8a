package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentops/go_mtb/internal/engine"
)

const cementResume = `Plant Manager with 15 years in cement manufacturing.
Ran kiln and finish mill operations, preventive maintenance via SAP and CMMS,
led quality and safety programs across two aggregate quarries.`

func testPrefilter() *Prefilter {
	return NewPrefilter(engine.DefaultConfig().Match, nil)
}

func job(id, title, industry string, extra map[string]any) map[string]any {
	out := map[string]any{"job_id": id, "title": title, "industry_segment": industry}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func TestFilter_CitizenshipHardDisqualifier(t *testing.T) {
	p := testPrefilter()
	jobs := []map[string]any{
		job("1", "Plant Manager", "Cement", map[string]any{"visa": "US Citizen / no visas"}),
		job("2", "Plant Manager", "Cement", nil),
	}

	// No citizenship hint → job 1 excluded regardless of its score.
	got := p.Filter(cementResume, engine.CandidateOverview{}, jobs, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0]["job_id"])

	// Matching hint → both eligible.
	overview := engine.CandidateOverview{CitizenshipHint: "US Citizen"}
	got = p.Filter(cementResume, overview, jobs, 10)
	assert.Len(t, got, 2)
}

func TestFilter_DegreeHardDisqualifier(t *testing.T) {
	p := testPrefilter()
	jobs := []map[string]any{
		job("1", "Process Engineer", "Cement", map[string]any{
			"hr_notes": "MBA required, non-negotiable",
		}),
		job("2", "Process Engineer", "Cement", nil),
	}

	got := p.Filter(cementResume, engine.CandidateOverview{}, jobs, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0]["job_id"])

	withMBA := cementResume + "\nMBA, University of Texas."
	got = p.Filter(withMBA, engine.CandidateOverview{}, jobs, 10)
	assert.Len(t, got, 2)
}

func TestFilter_ShortDegreeFormsMatchWholeWords(t *testing.T) {
	p := testPrefilter()
	jobs := []map[string]any{
		job("1", "Maintenance Supervisor", "Cement", map[string]any{
			"hr_notes": "BA required, non-negotiable",
		}),
	}

	// "background" and "jobs" contain the letters but not the degree.
	resume := `Maintenance supervisor background, twelve jobs across cement
plants and aggregate quarries. No degree.`
	verdicts := p.EvaluateBatch(resume, engine.CandidateOverview{}, jobs)
	require.Len(t, verdicts, 1)
	assert.False(t, verdicts[0].Included)
	require.NotEmpty(t, verdicts[0].ExclusionReasons)
	assert.Contains(t, verdicts[0].ExclusionReasons[0], "degree")

	// The real thing passes: dotted, plain, or the spelled-out form.
	for _, line := range []string{
		"B.A. in Business Administration.",
		"BA, Ohio State University.",
		"Bachelors degree in business.",
	} {
		got := p.Filter(resume+"\n"+line, engine.CandidateOverview{}, jobs, 10)
		assert.Len(t, got, 1, line)
	}
}

func TestFilter_NegatedCitizenshipHint(t *testing.T) {
	p := testPrefilter()
	jobs := []map[string]any{
		job("1", "Plant Manager", "Cement", map[string]any{"visa": "US citizens only"}),
	}

	// The hint contains "citizen" but negated, so the gate stays shut.
	overview := engine.CandidateOverview{CitizenshipHint: "non-citizen, needs sponsorship"}
	verdicts := p.EvaluateBatch(cementResume, overview, jobs)
	require.Len(t, verdicts, 1)
	assert.False(t, verdicts[0].Included)
	require.NotEmpty(t, verdicts[0].ExclusionReasons)
	assert.Contains(t, verdicts[0].ExclusionReasons[0], "citizenship")

	overview = engine.CandidateOverview{CitizenshipHint: "Green Card holder"}
	verdicts = p.EvaluateBatch(cementResume, overview, jobs)
	assert.True(t, verdicts[0].Included)
}

func TestFilter_PriorEmploymentConflict(t *testing.T) {
	p := testPrefilter()
	jobs := []map[string]any{
		job("1", "Plant Manager", "Cement", map[string]any{
			"company":  "Lafarge",
			"hr_notes": "No former employees will be considered",
		}),
		job("2", "Plant Manager", "Cement", map[string]any{"company": "Holcim"}),
	}

	resume := cementResume + "\nPreviously Shift Supervisor at Lafarge."
	got := p.Filter(resume, engine.CandidateOverview{}, jobs, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0]["job_id"])
}

func TestFilter_SoftInclusion(t *testing.T) {
	p := testPrefilter()
	jobs := []map[string]any{
		job("ind", "Shift Lead", "Ready-Mix Concrete", nil),     // industry keyword
		job("role", "Maintenance Supervisor", "Logistics", nil), // role keyword
		job("none", "Pastry Chef", "Hospitality", nil),
	}

	got := p.Filter(cementResume, engine.CandidateOverview{}, jobs, 10)
	ids := idsOf(got)
	assert.Contains(t, ids, "ind")
	assert.Contains(t, ids, "role")
	assert.NotContains(t, ids, "none")
}

func TestFilter_SalesFunctionExpansion(t *testing.T) {
	p := testPrefilter()
	salesResume := `Territory sales rep for industrial equipment. Consistently beat
quota, grew pipeline 40%, ran CRM-driven prospecting and closing.`

	jobs := []map[string]any{
		// No industry or generic role keyword: only the sales-function
		// expansion can include this title.
		job("1", "Territory Sales Representative", "Packaging", nil),
		job("2", "Pastry Chef", "Hospitality", nil),
	}

	got := p.Filter(salesResume, engine.CandidateOverview{}, jobs, 10)
	ids := idsOf(got)
	assert.Contains(t, ids, "1", "sales-adjacent title included for sales candidate")
	assert.NotContains(t, ids, "2")
}

func TestFilter_ScoringOrdersByRelevance(t *testing.T) {
	p := testPrefilter()
	overview := engine.CandidateOverview{
		RecentRoles: []engine.RecentRole{{Title: "Plant Manager", Company: "Acme Cement"}},
	}
	jobs := []map[string]any{
		job("weak", "Logistics Coordinator Manager", "Trucking", nil),
		job("strong", "Plant Manager", "Cement", nil),
	}

	got := p.Filter(cementResume, overview, jobs, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "strong", got[0]["job_id"], "best match ranks first")

	score, ok := got[0][ScoreKey].(float64)
	require.True(t, ok, "every returned job carries a numeric %s", ScoreKey)
	weakScore := got[1][ScoreKey].(float64)
	assert.Greater(t, score, weakScore)
}

func TestFilter_TargetSizeAndFallback(t *testing.T) {
	p := testPrefilter()

	var jobs []map[string]any
	for i := 0; i < 30; i++ {
		jobs = append(jobs, job(fmt.Sprintf("j%d", i), "Plant Manager", "Cement", nil))
	}
	got := p.Filter(cementResume, engine.CandidateOverview{}, jobs, 0)
	assert.Len(t, got, engine.DefaultConfig().Match.TargetSize, "default target size caps the shortlist")

	// Nothing passes → first N unfiltered come back.
	offTopic := []map[string]any{
		job("a", "Pastry Chef", "Hospitality", nil),
		job("b", "Sommelier", "Hospitality", nil),
	}
	got = p.Filter("completely unrelated resume text", engine.CandidateOverview{}, offTopic, 5)
	require.Len(t, got, 2, "non-empty input guarantees non-empty output")
	assert.Equal(t, "a", got[0]["job_id"])

	// Empty input stays empty.
	assert.Empty(t, p.Filter(cementResume, engine.CandidateOverview{}, nil, 5))
}

func TestFilter_KeyCasingTolerance(t *testing.T) {
	p := testPrefilter()
	jobs := []map[string]any{
		{"jobid": "x1", "position": "Quarry Manager", "industry": "Aggregates"},
	}
	got := p.Filter(cementResume, engine.CandidateOverview{}, jobs, 10)
	require.Len(t, got, 1)

	verdicts := p.EvaluateBatch(cementResume, engine.CandidateOverview{}, jobs)
	require.Len(t, verdicts, 1)
	assert.Equal(t, "x1", verdicts[0].JobID)
	assert.True(t, verdicts[0].Included)
}

func TestEvaluateBatch_ExclusionReasons(t *testing.T) {
	p := testPrefilter()
	jobs := []map[string]any{
		job("1", "Plant Manager", "Cement", map[string]any{"visa": "no visas"}),
		job("2", "Pastry Chef", "Hospitality", nil),
	}

	verdicts := p.EvaluateBatch(cementResume, engine.CandidateOverview{}, jobs)
	require.Len(t, verdicts, 2)

	assert.False(t, verdicts[0].Included)
	require.NotEmpty(t, verdicts[0].ExclusionReasons)
	assert.Contains(t, verdicts[0].ExclusionReasons[0], "citizenship")

	assert.False(t, verdicts[1].Included)
	require.NotEmpty(t, verdicts[1].ExclusionReasons)
}

func idsOf(jobs []map[string]any) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, engine.StringAt(j, "job_id", "jobid"))
	}
	return out
}
