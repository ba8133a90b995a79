package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
	"github.com/govcon-lab/bidgate/pkg/usecase"
)

func seedClause(t *testing.T, uc *usecase.UseCases, family types.RegulationFamily, number string, category types.RiskCategory, score int) *model.RegulatoryClause {
	t.Helper()
	clause, err := uc.IngestClause(context.Background(), &model.RegulatoryClause{
		Family:           family,
		Number:           number,
		Title:            "clause " + number,
		BaseRiskCategory: category,
		BaseRiskScore:    score,
		BaseFlowDown:     types.FlowDownRequired,
	}, "ingest-bot")
	gt.NoError(t, err).Required()
	return clause
}

func seedSolicitation(t *testing.T, uc *usecase.UseCases, contractType types.ContractType) *model.Solicitation {
	t.Helper()
	sol, err := uc.CreateSolicitation(context.Background(), &model.Solicitation{
		Number:       "W15P7T-26-R-0021",
		Title:        "Tactical Network Modernization",
		Agency:       "DoD",
		ContractType: contractType,
		Owner:        "capture-lead",
	}, "capture-lead")
	gt.NoError(t, err).Required()
	return sol
}

// seedSolicitationInExtraction creates a solicitation and moves it into
// CLAUSE_EXTRACTION_PENDING
func seedSolicitationInExtraction(t *testing.T, uc *usecase.UseCases, contractType types.ContractType) *model.Solicitation {
	t.Helper()
	sol := seedSolicitation(t, uc, contractType)
	moved, err := uc.SubmitForExtraction(context.Background(), sol.ID, "capture-lead")
	gt.NoError(t, err).Required()
	return moved
}
