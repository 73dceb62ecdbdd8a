// go_mtb — Master Tracking Board normalization & candidate-job matching.
//
// Two commands: "normalize" merges AI-extracted job dicts with the
// authoritative board CSV into canonical records, "match" prefilters a
// job set for one candidate ahead of AI ranking.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talentops/go_mtb/internal/engine"
	"github.com/talentops/go_mtb/internal/engine/match"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:           "go_mtb",
		Short:         "MTB normalization and candidate-job matching pipeline",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "YAML policy file overlaying the defaults")

	root.AddCommand(newNormalizeCmd(), newMatchCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (engine.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return engine.LoadConfig(path)
}

func newNormalizeCmd() *cobra.Command {
	var boardPath, aiPath, outPath string
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Merge AI-extracted jobs with the board CSV into canonical records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			rows, err := readBoardCSV(boardPath)
			if err != nil {
				return fmt.Errorf("board csv: %w", err)
			}
			aiByID, err := readAIRecords(aiPath)
			if err != nil {
				return fmt.Errorf("ai records: %w", err)
			}

			records, report := engine.NewMerger(cfg).OptimizeBatch(buildMergeInputs(rows, aiByID))
			slog.Info("batch normalized",
				slog.String("run_id", report.RunID),
				slog.Int("total", report.Total),
				slog.Int("excluded", report.Excluded),
				slog.Int("errored", report.Errored),
				slog.Int("warned", report.Warned),
			)

			out := make([]map[string]any, 0, len(records))
			for _, rec := range records {
				out = append(out, rec.Emit())
			}
			return writeJSON(outPath, out)
		},
	}
	cmd.Flags().StringVar(&boardPath, "board", "", "Master Tracking Board CSV")
	cmd.Flags().StringVar(&aiPath, "ai", "", "JSON array of AI-extracted job dicts")
	cmd.Flags().StringVar(&outPath, "out", "", "output JSON path (default stdout)")
	_ = cmd.MarkFlagRequired("board")
	return cmd
}

func newMatchCmd() *cobra.Command {
	var resumePath, overviewPath, jobsPath, outPath string
	var size int
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Prefilter and rank a job set for one candidate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			resume, err := os.ReadFile(resumePath)
			if err != nil {
				return fmt.Errorf("resume: %w", err)
			}
			var jobs []map[string]any
			if err := readJSONFile(jobsPath, &jobs); err != nil {
				return fmt.Errorf("jobs: %w", err)
			}
			var overview engine.CandidateOverview
			if overviewPath != "" {
				if err := readJSONFile(overviewPath, &overview); err != nil {
					return fmt.Errorf("overview: %w", err)
				}
			}

			shortlist := match.NewPrefilter(cfg.Match, nil).Filter(string(resume), overview, jobs, size)
			slog.Info("shortlist ready",
				slog.Int("jobs_in", len(jobs)),
				slog.Int("jobs_out", len(shortlist)),
			)
			return writeJSON(outPath, shortlist)
		},
	}
	cmd.Flags().StringVar(&resumePath, "resume", "", "pre-extracted resume text file")
	cmd.Flags().StringVar(&overviewPath, "overview", "", "candidate overview JSON (optional)")
	cmd.Flags().StringVar(&jobsPath, "jobs", "", "JSON array of job dicts")
	cmd.Flags().StringVar(&outPath, "out", "", "output JSON path (default stdout)")
	cmd.Flags().IntVar(&size, "size", 0, "shortlist size (default from config)")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("jobs")
	return cmd
}

// buildMergeInputs joins board rows with AI records on the normalized
// job id, so "8475.0" on the board finds the record extracted as "8475",
// and carries each row's include-flag override.
func buildMergeInputs(rows []engine.MTBRow, aiByID map[string]engine.AIRecord) []engine.MergeInput {
	inputs := make([]engine.MergeInput, 0, len(rows))
	for _, row := range rows {
		inputs = append(inputs, engine.MergeInput{
			AI:           aiByID[engine.NormalizeJobID(row.JobID)],
			Row:          row,
			ForceInclude: row.ForceIncluded(),
		})
	}
	return inputs
}

// readBoardCSV reads the MTB export: first row is the header, every other
// row becomes an MTBRow through the tolerant column adapter.
func readBoardCSV(path string) ([]engine.MTBRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // board exports have ragged rows
	all, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) < 2 {
		return nil, nil
	}

	header := all[0]
	rows := make([]engine.MTBRow, 0, len(all)-1)
	for _, rec := range all[1:] {
		raw := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				raw[col] = rec[i]
			}
		}
		rows = append(rows, engine.RowFromMap(raw))
	}
	return rows, nil
}

// readAIRecords indexes the AI-extract JSON array by job id.
func readAIRecords(path string) (map[string]engine.AIRecord, error) {
	out := make(map[string]engine.AIRecord)
	if path == "" {
		return out, nil
	}
	var raws []map[string]any
	if err := readJSONFile(path, &raws); err != nil {
		return nil, err
	}
	for _, raw := range raws {
		id := engine.NormalizeJobID(engine.StringAt(raw, "job_id", "jobId", "jobid"))
		if id == "" {
			slog.Warn("ai record without job id skipped")
			continue
		}
		out[id] = engine.AIRecordFromMap(raw)
	}
	return out, nil
}

func readJSONFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if path == "" {
		_, err = os.Stdout.Write(b)
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
