package maturity_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
	"github.com/govcon-lab/bidgate/pkg/repository/memory"
	"github.com/govcon-lab/bidgate/pkg/service/maturity"
)

func TestComputeMaturityIndexEmptyDataset(t *testing.T) {
	repo := memory.New()
	agg := maturity.New(repo, nil)

	result, err := agg.ComputeMaturityIndex(context.Background())
	gt.NoError(t, err).Required()

	gt.Number(t, len(result.Pillars)).Equal(7)
	for _, pillar := range result.Pillars {
		gt.Number(t, pillar.Score).Equal(20)
		gt.Number(t, pillar.Rate).Equal(1.0)
	}
	gt.Number(t, result.Overall).Equal(100)
	gt.Number(t, len(result.Indicators)).Equal(0)
	gt.Bool(t, result.ComputedAt.IsZero()).False()
}

func TestComputeMaturityIndexFlagsGaps(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	// One draft solicitation, one in review without assessments or snapshot
	_, err := repo.Solicitation().Create(ctx, &model.Solicitation{
		Number: "W912DY-25-R-0018",
		Status: types.SolicitationStatusDraft,
	})
	gt.NoError(t, err).Required()

	reviewing, err := repo.Solicitation().Create(ctx, &model.Solicitation{
		Number: "FA8750-25-R-0101",
		Status: types.SolicitationStatusReviewInProgress,
	})
	gt.NoError(t, err).Required()

	_, _, err = repo.ClauseEntry().CreateIfAbsent(ctx, &model.SolicitationClauseEntry{
		SolicitationID: reviewing.ID,
		ClauseID:       1,
		Detection:      types.DetectionMethodExtracted,
	})
	gt.NoError(t, err).Required()

	agg := maturity.New(repo, nil)
	result, err := agg.ComputeMaturityIndex(ctx)
	gt.NoError(t, err).Required()

	gt.Number(t, len(result.Pillars)).Equal(7)
	// Half of the solicitations are still in DRAFT
	gt.Number(t, result.Pillars[0].Score).Equal(10)
	// The sole clause entry has no assessment
	gt.Number(t, result.Pillars[2].Score).Equal(0)
	gt.Bool(t, result.Overall < 100).True()

	foundAssessmentGap := false
	for _, ind := range result.Indicators {
		if strings.Contains(ind, "without any risk assessment") {
			foundAssessmentGap = true
		}
	}
	gt.Bool(t, foundAssessmentGap).True()
}

func TestComputeMaturityIndexSnapshotFreshness(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	sol, err := repo.Solicitation().Create(ctx, &model.Solicitation{
		Number: "N00024-25-R-5200",
		Status: types.SolicitationStatusReviewComplete,
	})
	gt.NoError(t, err).Required()

	generated := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	_, err = repo.Snapshot().Append(ctx, &model.RiskLogSnapshot{
		SolicitationID: sol.ID,
		GeneratedAt:    generated,
	})
	gt.NoError(t, err).Required()

	// Inside the freshness window the snapshot pillar is fully mature
	freshClock := func() time.Time { return generated.Add(24 * time.Hour) }
	result, err := maturity.New(repo, nil, maturity.WithClock(freshClock)).ComputeMaturityIndex(ctx)
	gt.NoError(t, err).Required()
	gt.Number(t, result.Pillars[4].Score).Equal(20)

	// Ten days later the snapshot is stale
	staleClock := func() time.Time { return generated.Add(10 * 24 * time.Hour) }
	result, err = maturity.New(repo, nil, maturity.WithClock(staleClock)).ComputeMaturityIndex(ctx)
	gt.NoError(t, err).Required()
	gt.Number(t, result.Pillars[4].Score).Equal(0)
}
