package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
	"github.com/govcon-lab/bidgate/pkg/repository/memory"
	"github.com/govcon-lab/bidgate/pkg/usecase"
)

func TestIngestClauseValidation(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	cases := map[string]*model.RegulatoryClause{
		"invalid family": {
			Family:        "OSHA",
			Number:        "52.212-4",
			BaseRiskScore: 3,
		},
		"missing number": {
			Family:        types.RegulationFamilyFAR,
			BaseRiskScore: 3,
		},
		"score out of range": {
			Family:        types.RegulationFamilyFAR,
			Number:        "52.212-4",
			BaseRiskScore: 6,
		},
	}

	for name, clause := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.IngestClause(ctx, clause, "ingest-bot")
			gt.Error(t, err)
			gt.Bool(t, errors.Is(err, usecase.ErrValidationFailed)).True()
		})
	}
}

func TestResolveEffectiveClauseOverlayPrecedence(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	_, err := uc.IngestClause(ctx, &model.RegulatoryClause{
		Family:           types.RegulationFamilyDFARS,
		Number:           "252.204-7012",
		Title:            "Safeguarding Covered Defense Information",
		BaseRiskCategory: types.RiskCategoryCybersecurity,
		BaseRiskScore:    4,
		BaseFlowDown:     types.FlowDownRequired,
	}, "ingest-bot")
	gt.NoError(t, err).Required()

	score := 5
	_, err = uc.PutOverlay(ctx, &model.ClauseOverlay{
		Family:     types.RegulationFamilyDFARS,
		Number:     "252.204-7012",
		RiskScore:  &score,
		Mitigation: "require CMMC evidence before bid",
	}, "risk-admin")
	gt.NoError(t, err).Required()

	eff, err := uc.ResolveEffectiveClause(ctx, types.RegulationFamilyDFARS, "252.204-7012")
	gt.NoError(t, err).Required()

	// overridden field wins, everything else falls through to the base
	gt.Number(t, eff.RiskScore).Equal(5)
	gt.Value(t, eff.RiskCategory).Equal(types.RiskCategoryCybersecurity)
	gt.Value(t, eff.FlowDown).Equal(types.FlowDownRequired)
	gt.Value(t, eff.Mitigation).Equal("require CMMC evidence before bid")
	gt.Bool(t, eff.HasOverlay).True()
}

func TestResolveEffectiveClauseWithoutOverlay(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	_, err := uc.IngestClause(ctx, &model.RegulatoryClause{
		Family:           types.RegulationFamilyFAR,
		Number:           "52.212-4",
		BaseRiskCategory: types.RiskCategoryGeneral,
		BaseRiskScore:    2,
		BaseFlowDown:     types.FlowDownNotRequired,
	}, "ingest-bot")
	gt.NoError(t, err).Required()

	// family omitted, number resolved across families
	eff, err := uc.ResolveEffectiveClause(ctx, "", "52.212-4")
	gt.NoError(t, err).Required()
	gt.Number(t, eff.RiskScore).Equal(2)
	gt.Bool(t, eff.HasOverlay).False()
}

func TestGetOverlay(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	_, err := uc.GetOverlay(ctx, types.RegulationFamilyFAR, "52.212-4")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrOverlayNotFound)).True()

	_, err = uc.IngestClause(ctx, &model.RegulatoryClause{
		Family:           types.RegulationFamilyFAR,
		Number:           "52.212-4",
		BaseRiskCategory: types.RiskCategoryGeneral,
		BaseRiskScore:    2,
		BaseFlowDown:     types.FlowDownNotRequired,
	}, "ingest-bot")
	gt.NoError(t, err).Required()

	score := 4
	_, err = uc.PutOverlay(ctx, &model.ClauseOverlay{
		Family:    types.RegulationFamilyFAR,
		Number:    "52.212-4",
		RiskScore: &score,
	}, "risk-admin")
	gt.NoError(t, err).Required()

	overlay, err := uc.GetOverlay(ctx, types.RegulationFamilyFAR, "52.212-4")
	gt.NoError(t, err).Required()
	gt.Number(t, *overlay.RiskScore).Equal(4)
}

func TestPutOverlayRejectsOrphan(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	_, err := uc.PutOverlay(ctx, &model.ClauseOverlay{
		Family: types.RegulationFamilyFAR,
		Number: "52.999-99",
	}, "risk-admin")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrClauseNotFound)).True()

	overlays, err := uc.ListOverlays(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, overlays).Length(0)
}
