package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// LevelThresholds are the percentage cut points classifying a 0-100 score
// into risk levels: score < L2 is L1, score < L3 is L2, score < L4 is L3,
// anything else is L4.
type LevelThresholds struct {
	L2 int
	L3 int
	L4 int
}

// DimensionWeights are the per-dimension weights applied when averaging the
// five factor scores. All-equal weights reduce to the arithmetic mean.
type DimensionWeights struct {
	Financial   float64
	Cyber       float64
	Liability   float64
	Regulatory  float64
	Performance float64
}

// AggregateBlend controls how per-clause scores combine into the
// solicitation-level score: round(avg*AvgWeight + max*MaxWeight). The max
// term dominating means one severe clause outweighs many mild ones.
type AggregateBlend struct {
	AvgWeight float64
	MaxWeight float64
}

// ScoringConfig is the injected scoring policy for the risk scorer, the
// escalation evaluator, and the approve-to-bid gate. It is always passed
// explicitly, never read from a package-level singleton, so tests stay
// deterministic and concurrent reads are safe.
type ScoringConfig struct {
	Thresholds      LevelThresholds
	Weights         DimensionWeights
	Blend           AggregateBlend
	FreshnessWindow time.Duration
	CyberWatchList  []string // clause numbers that force cyber review when attached
	EscalationCount int      // L3-or-above clause count that forces escalation
}

// DefaultScoringConfig returns the stock scoring policy
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		Thresholds: LevelThresholds{L2: 25, L3: 50, L4: 75},
		Weights: DimensionWeights{
			Financial:   1,
			Cyber:       1,
			Liability:   1,
			Regulatory:  1,
			Performance: 1,
		},
		Blend:           AggregateBlend{AvgWeight: 0.4, MaxWeight: 0.6},
		FreshnessWindow: 7 * 24 * time.Hour,
		CyberWatchList: []string{
			"252.204-7012",
			"252.204-7019",
			"252.204-7020",
			"52.204-21",
		},
		EscalationCount: 3,
	}
}

// Validate checks the config is internally consistent
func (c *ScoringConfig) Validate() error {
	if !(0 < c.Thresholds.L2 && c.Thresholds.L2 < c.Thresholds.L3 && c.Thresholds.L3 < c.Thresholds.L4 && c.Thresholds.L4 <= 100) {
		return goerr.New("level thresholds must satisfy 0 < L2 < L3 < L4 <= 100",
			goerr.V("l2", c.Thresholds.L2), goerr.V("l3", c.Thresholds.L3), goerr.V("l4", c.Thresholds.L4))
	}
	for _, w := range []float64{c.Weights.Financial, c.Weights.Cyber, c.Weights.Liability, c.Weights.Regulatory, c.Weights.Performance} {
		if w < 0 {
			return goerr.New("dimension weights must be non-negative", goerr.V("weight", w))
		}
	}
	if c.Weights.Financial+c.Weights.Cyber+c.Weights.Liability+c.Weights.Regulatory+c.Weights.Performance == 0 {
		return goerr.New("at least one dimension weight must be positive")
	}
	if c.Blend.AvgWeight < 0 || c.Blend.MaxWeight < 0 || c.Blend.AvgWeight+c.Blend.MaxWeight == 0 {
		return goerr.New("aggregate blend weights must be non-negative and not both zero",
			goerr.V("avg_weight", c.Blend.AvgWeight), goerr.V("max_weight", c.Blend.MaxWeight))
	}
	if c.FreshnessWindow <= 0 {
		return goerr.New("freshness window must be positive", goerr.V("window", c.FreshnessWindow))
	}
	if c.EscalationCount < 1 {
		return goerr.New("escalation count must be at least 1", goerr.V("count", c.EscalationCount))
	}
	return nil
}
