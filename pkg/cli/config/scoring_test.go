package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
)

func TestScoringConfigureDefaults(t *testing.T) {
	var s Scoring

	cfg, err := s.Configure()
	gt.NoError(t, err).Required()
	gt.Number(t, cfg.Thresholds.L2).Equal(25)
	gt.Number(t, cfg.Thresholds.L3).Equal(50)
	gt.Number(t, cfg.Thresholds.L4).Equal(75)
	gt.Value(t, cfg.FreshnessWindow).Equal(7 * 24 * time.Hour)
}

func TestScoringConfigureFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.toml")
	content := `
freshness_window_hours = 336
escalation_count = 2
cyber_watch_list = ["252.204-7012"]

[thresholds]
l4 = 80

[weights]
cyber = 2.0

[blend]
avg_weight = 0.5
max_weight = 0.5
`
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()

	s := Scoring{path: path}
	cfg, err := s.Configure()
	gt.NoError(t, err).Required()

	// overridden values
	gt.Number(t, cfg.Thresholds.L4).Equal(80)
	gt.Number(t, cfg.Weights.Cyber).Equal(2.0)
	gt.Number(t, cfg.Blend.AvgWeight).Equal(0.5)
	gt.Value(t, cfg.FreshnessWindow).Equal(336 * time.Hour)
	gt.Number(t, cfg.EscalationCount).Equal(2)
	gt.Array(t, cfg.CyberWatchList).Length(1)

	// untouched values fall back to the stock policy
	gt.Number(t, cfg.Thresholds.L2).Equal(25)
	gt.Number(t, cfg.Weights.Financial).Equal(1.0)
}

func TestScoringConfigureRejectsInvalidPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.toml")
	content := `
[thresholds]
l2 = 90
`
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()

	s := Scoring{path: path}
	_, err := s.Configure()
	gt.Error(t, err)
}

func TestScoringConfigureMissingFile(t *testing.T) {
	s := Scoring{path: "/no/such/file.toml"}
	_, err := s.Configure()
	gt.Error(t, err)
}
