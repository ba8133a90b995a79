package scoring

import (
	"math"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/model/config"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// Scorer computes clause-level and solicitation-level risk scores from the
// injected scoring policy. All methods are pure and safe for concurrent use.
type Scorer struct {
	cfg *config.ScoringConfig
}

// New returns a Scorer using the given policy, falling back to the default
// policy when cfg is nil
func New(cfg *config.ScoringConfig) *Scorer {
	if cfg == nil {
		cfg = config.DefaultScoringConfig()
	}
	return &Scorer{cfg: cfg}
}

// Score computes the 0-100 percentage score and risk level of a single
// clause assessment. Factors scored 0 are treated as not applicable and
// excluded from the weighted mean. Inputs are assumed validated; a vector
// of all zeros scores 0 and classifies L1.
func (s *Scorer) Score(factors model.FactorScores) (int, types.RiskLevel) {
	weights := map[string]float64{
		"financial":   s.cfg.Weights.Financial,
		"cyber":       s.cfg.Weights.Cyber,
		"liability":   s.cfg.Weights.Liability,
		"regulatory":  s.cfg.Weights.Regulatory,
		"performance": s.cfg.Weights.Performance,
	}

	var weightedSum, weightTotal float64
	for _, dim := range factors.Dimensions() {
		if dim.Score == 0 {
			continue
		}
		w := weights[dim.Name]
		weightedSum += float64(dim.Score) * w
		weightTotal += w
	}
	if weightTotal == 0 {
		return 0, types.RiskLevelL1
	}

	mean := weightedSum / weightTotal
	percent := int(math.Round(mean / 5.0 * 100.0))
	return percent, s.Level(percent)
}

// Level classifies a 0-100 score into a discrete risk level using the
// configured thresholds
func (s *Scorer) Level(percent int) types.RiskLevel {
	switch {
	case percent < s.cfg.Thresholds.L2:
		return types.RiskLevelL1
	case percent < s.cfg.Thresholds.L3:
		return types.RiskLevelL2
	case percent < s.cfg.Thresholds.L4:
		return types.RiskLevelL3
	default:
		return types.RiskLevelL4
	}
}

// Aggregate blends per-clause percentage scores into the solicitation-level
// score: round(avg*avgWeight + max*maxWeight). The max term dominating is
// deliberate: a single severe clause outweighs many mild ones. An empty
// input aggregates to 0 and L1.
func (s *Scorer) Aggregate(percents []int) (int, types.RiskLevel) {
	if len(percents) == 0 {
		return 0, types.RiskLevelL1
	}

	sum := 0
	max := percents[0]
	for _, p := range percents {
		sum += p
		if p > max {
			max = p
		}
	}
	avg := float64(sum) / float64(len(percents))

	score := int(math.Round(avg*s.cfg.Blend.AvgWeight + float64(max)*s.cfg.Blend.MaxWeight))
	return score, s.Level(score)
}
