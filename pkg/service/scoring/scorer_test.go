package scoring_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/model/config"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
	"github.com/govcon-lab/bidgate/pkg/service/scoring"
)

func TestScore(t *testing.T) {
	scorer := scoring.New(nil)

	t.Run("arithmetic mean with equal weights", func(t *testing.T) {
		percent, level := scorer.Score(model.FactorScores{
			Financial:   3,
			Cyber:       3,
			Liability:   3,
			Regulatory:  3,
			Performance: 3,
		})
		gt.Number(t, percent).Equal(60)
		gt.Value(t, level).Equal(types.RiskLevelL3)
	})

	t.Run("zero factors are excluded as not applicable", func(t *testing.T) {
		percent, level := scorer.Score(model.FactorScores{
			Financial: 5,
			Cyber:     5,
		})
		gt.Number(t, percent).Equal(100)
		gt.Value(t, level).Equal(types.RiskLevelL4)
	})

	t.Run("all-zero vector scores zero at L1", func(t *testing.T) {
		percent, level := scorer.Score(model.FactorScores{})
		gt.Number(t, percent).Equal(0)
		gt.Value(t, level).Equal(types.RiskLevelL1)
	})

	t.Run("weighting table overrides the mean", func(t *testing.T) {
		cfg := config.DefaultScoringConfig()
		cfg.Weights = config.DimensionWeights{Cyber: 3, Financial: 1, Liability: 1, Regulatory: 1, Performance: 1}
		weighted := scoring.New(cfg)

		// (5*3 + 1*4) / 7 = 2.714... -> 54%
		percent, level := weighted.Score(model.FactorScores{
			Cyber:       5,
			Financial:   1,
			Liability:   1,
			Regulatory:  1,
			Performance: 1,
		})
		gt.Number(t, percent).Equal(54)
		gt.Value(t, level).Equal(types.RiskLevelL3)
	})
}

func TestLevelThresholds(t *testing.T) {
	scorer := scoring.New(nil)

	cases := []struct {
		percent int
		level   types.RiskLevel
	}{
		{0, types.RiskLevelL1},
		{24, types.RiskLevelL1},
		{25, types.RiskLevelL2},
		{49, types.RiskLevelL2},
		{50, types.RiskLevelL3},
		{74, types.RiskLevelL3},
		{75, types.RiskLevelL4},
		{100, types.RiskLevelL4},
	}
	for _, tc := range cases {
		gt.Value(t, scorer.Level(tc.percent)).Equal(tc.level)
	}

	t.Run("retuned thresholds move the cut points", func(t *testing.T) {
		cfg := config.DefaultScoringConfig()
		cfg.Thresholds = config.LevelThresholds{L2: 10, L3: 40, L4: 90}
		retuned := scoring.New(cfg)
		gt.Value(t, retuned.Level(39)).Equal(types.RiskLevelL2)
		gt.Value(t, retuned.Level(89)).Equal(types.RiskLevelL3)
		gt.Value(t, retuned.Level(90)).Equal(types.RiskLevelL4)
	})
}

func TestAggregate(t *testing.T) {
	scorer := scoring.New(nil)

	t.Run("single severe clause dominates", func(t *testing.T) {
		// round(30*0.4 + 90*0.6) = round(12+54) = 66
		score, level := scorer.Aggregate([]int{10, 10, 10, 90})
		gt.Number(t, score).Equal(66)
		gt.Value(t, level).Equal(types.RiskLevelL3)
	})

	t.Run("uniform scores aggregate to themselves", func(t *testing.T) {
		score, level := scorer.Aggregate([]int{40, 40, 40})
		gt.Number(t, score).Equal(40)
		gt.Value(t, level).Equal(types.RiskLevelL2)
	})

	t.Run("empty input aggregates to zero", func(t *testing.T) {
		score, level := scorer.Aggregate(nil)
		gt.Number(t, score).Equal(0)
		gt.Value(t, level).Equal(types.RiskLevelL1)
	})
}
