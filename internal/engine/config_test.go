package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1.0, cfg.USDRates["USD"])
	assert.Equal(t, 2080, cfg.HourlyAnnualFactor)
	assert.Equal(t, 0.7, cfg.Match.FuzzyThreshold)
	assert.Equal(t, 20, cfg.Match.TargetSize)
	assert.NotEmpty(t, cfg.Match.IndustryKeywords)
}

func TestLoadConfig_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
match:
  fuzzy_threshold: 0.8
  target_size: 5
exclusion_marker: skip
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.8, cfg.Match.FuzzyThreshold)
	assert.Equal(t, 5, cfg.Match.TargetSize)
	assert.Equal(t, "skip", cfg.ExclusionMarker)
	// Untouched fields keep their defaults.
	assert.Equal(t, 2080, cfg.HourlyAnnualFactor)
	assert.Equal(t, 1.27, cfg.USDRates["GBP"])
}

func TestLoadConfig_EmptyPathIsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Match.TargetSize, cfg.Match.TargetSize)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/policy.yaml")
	assert.Error(t, err)
}
