package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	domainConfig "github.com/govcon-lab/bidgate/pkg/domain/model/config"
	"github.com/govcon-lab/bidgate/pkg/utils/logging"
)

// Scoring holds CLI flags for the scoring policy file
type Scoring struct {
	path string
}

// Flags returns CLI flags for scoring policy configuration
func (s *Scoring) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "scoring-config",
			Usage:       "Path to scoring policy TOML file (defaults to the stock policy)",
			Sources:     cli.EnvVars("BIDGATE_SCORING_CONFIG"),
			Destination: &s.path,
		},
	}
}

// scoringFile is the TOML shape of the scoring policy. Omitted sections fall
// back to the stock policy values.
type scoringFile struct {
	Thresholds struct {
		L2 *int `toml:"l2"`
		L3 *int `toml:"l3"`
		L4 *int `toml:"l4"`
	} `toml:"thresholds"`
	Weights struct {
		Financial   *float64 `toml:"financial"`
		Cyber       *float64 `toml:"cyber"`
		Liability   *float64 `toml:"liability"`
		Regulatory  *float64 `toml:"regulatory"`
		Performance *float64 `toml:"performance"`
	} `toml:"weights"`
	Blend struct {
		AvgWeight *float64 `toml:"avg_weight"`
		MaxWeight *float64 `toml:"max_weight"`
	} `toml:"blend"`
	FreshnessWindowHours *int     `toml:"freshness_window_hours"`
	CyberWatchList       []string `toml:"cyber_watch_list"`
	EscalationCount      *int     `toml:"escalation_count"`
}

// Configure loads the scoring policy, layering the file over the stock
// policy and validating the result
func (s *Scoring) Configure() (*domainConfig.ScoringConfig, error) {
	cfg := domainConfig.DefaultScoringConfig()
	if s.path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read scoring config", goerr.V("path", s.path))
	}

	var file scoringFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse scoring config", goerr.V("path", s.path))
	}

	applyInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	applyFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}

	applyInt(&cfg.Thresholds.L2, file.Thresholds.L2)
	applyInt(&cfg.Thresholds.L3, file.Thresholds.L3)
	applyInt(&cfg.Thresholds.L4, file.Thresholds.L4)
	applyFloat(&cfg.Weights.Financial, file.Weights.Financial)
	applyFloat(&cfg.Weights.Cyber, file.Weights.Cyber)
	applyFloat(&cfg.Weights.Liability, file.Weights.Liability)
	applyFloat(&cfg.Weights.Regulatory, file.Weights.Regulatory)
	applyFloat(&cfg.Weights.Performance, file.Weights.Performance)
	applyFloat(&cfg.Blend.AvgWeight, file.Blend.AvgWeight)
	applyFloat(&cfg.Blend.MaxWeight, file.Blend.MaxWeight)
	if file.FreshnessWindowHours != nil {
		cfg.FreshnessWindow = time.Duration(*file.FreshnessWindowHours) * time.Hour
	}
	if file.CyberWatchList != nil {
		cfg.CyberWatchList = file.CyberWatchList
	}
	applyInt(&cfg.EscalationCount, file.EscalationCount)

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid scoring config", goerr.V("path", s.path))
	}

	logging.Default().Info("Loaded scoring policy", "path", s.path)
	return cfg, nil
}
