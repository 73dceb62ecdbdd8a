package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all tunable parsing and matching policy. It is injected into
// constructors rather than read from process-wide state, so independent
// batches can run with independent policies.
type Config struct {
	// USDRates converts one unit of a currency into USD for cross-job
	// comparison. Fixed table, deliberately not live-fetched.
	USDRates map[string]float64 `yaml:"usd_rates"`

	// HourlyAnnualFactor annualizes hourly figures (40h × 52w).
	HourlyAnnualFactor int `yaml:"hourly_annual_factor"`

	// ExclusionMarker drops a board row when its CM field contains this
	// substring (case-insensitive), unless the row is force-included.
	ExclusionMarker string `yaml:"exclusion_marker"`

	Match MatchConfig `yaml:"match"`
}

// MatchConfig is the prefilter policy: keyword tables, fuzzy threshold and
// scoring weights.
type MatchConfig struct {
	// FuzzyThreshold is the minimum token-set similarity for the fuzzy
	// soft-inclusion test.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`

	// TargetSize is the default shortlist length.
	TargetSize int `yaml:"target_size"`

	// IndustryKeywords identify in-industry jobs (heavy materials).
	IndustryKeywords []string `yaml:"industry_keywords"`

	// RoleKeywords identify relevant job functions by title.
	RoleKeywords []string `yaml:"role_keywords"`

	// ToolKeywords are technical-tool terms worth a capped score bonus.
	ToolKeywords []string `yaml:"tool_keywords"`

	// SalesTitleKeywords widen the net for sales-function candidates.
	SalesTitleKeywords []string `yaml:"sales_title_keywords"`

	// Scoring weights.
	TitleSimilarityWeight float64 `yaml:"title_similarity_weight"`
	IndustryBonus         float64 `yaml:"industry_bonus"`
	ToolBonus             float64 `yaml:"tool_bonus"`
	MaxToolMatches        int     `yaml:"max_tool_matches"`
	ManagementBonus       float64 `yaml:"management_bonus"`
	EngineeringBonus      float64 `yaml:"engineering_bonus"`
}

// DefaultConfig returns the policy used in production runs.
func DefaultConfig() Config {
	return Config{
		USDRates: map[string]float64{
			"USD": 1.0,
			"EUR": 1.08,
			"GBP": 1.27,
			"CAD": 0.74,
			"AUD": 0.66,
		},
		HourlyAnnualFactor: 2080,
		ExclusionMarker:    "exc",
		Match: MatchConfig{
			FuzzyThreshold: 0.7,
			TargetSize:     20,
			IndustryKeywords: []string{
				"cement", "aggregate", "aggregates", "mining", "lime",
				"ready-mix", "ready mix", "readymix", "concrete", "asphalt",
				"hma", "quarry", "crushed stone", "gypsum", "frac sand",
			},
			RoleKeywords: []string{
				"engineer", "engineering", "manager", "supervisor",
				"superintendent", "director", "technician", "operator",
				"maintenance", "plant", "production", "quality", "safety",
				"reliability", "electrical", "mechanical", "process",
			},
			ToolKeywords: []string{
				"sap", "autocad", "plc", "scada", "excel", "six sigma",
				"lean", "cmms", "hmi", "allen-bradley", "siemens",
			},
			SalesTitleKeywords: []string{
				"sales", "account manager", "account executive",
				"business development", "territory", "regional sales",
			},
			TitleSimilarityWeight: 10,
			IndustryBonus:         5,
			ToolBonus:             1,
			MaxToolMatches:        3,
			ManagementBonus:       2,
			EngineeringBonus:      1,
		},
	}
}

// LoadConfig reads a YAML policy file and overlays it onto the defaults.
// Missing file path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
