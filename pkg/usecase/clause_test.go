package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/govcon-lab/bidgate/pkg/domain/types"
	"github.com/govcon-lab/bidgate/pkg/repository/memory"
	"github.com/govcon-lab/bidgate/pkg/usecase"
)

func TestExtractClauses(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	seedClause(t, uc, types.RegulationFamilyFAR, "52.212-4", types.RiskCategoryGeneral, 2)
	seedClause(t, uc, types.RegulationFamilyDFARS, "252.204-7012", types.RiskCategoryCybersecurity, 4)
	sol := seedSolicitationInExtraction(t, uc, types.ContractTypeCostReimbursable)

	result, err := uc.ExtractClauses(ctx, sol.ID, []usecase.ClauseCandidate{
		{Number: "52.212-4", Confidence: 0.95},
		{Number: "252.204-7012", Confidence: 0.88},
		{Number: "52.999-99", Confidence: 0.60}, // not in catalog
	}, "extract-bot")
	gt.NoError(t, err).Required()

	gt.Array(t, result.Entries).Length(2)
	gt.Number(t, result.Dropped).Equal(1)

	updated, err := uc.GetSolicitation(ctx, sol.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Status).Equal(types.SolicitationStatusExtractionComplete)
}

func TestExtractClausesRequiresPendingStatus(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	sol := seedSolicitation(t, uc, types.ContractTypeTimeAndMaterials)

	_, err := uc.ExtractClauses(ctx, sol.ID, nil, "extract-bot")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrInvalidState)).True()
}

func TestExtractClausesRerunAfterCompletion(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	seedClause(t, uc, types.RegulationFamilyFAR, "52.212-4", types.RiskCategoryGeneral, 2)
	seedClause(t, uc, types.RegulationFamilyDFARS, "252.204-7012", types.RiskCategoryCybersecurity, 4)
	sol := seedSolicitationInExtraction(t, uc, types.ContractTypeFirmFixedPrice)

	_, err := uc.ExtractClauses(ctx, sol.ID, []usecase.ClauseCandidate{
		{Number: "52.212-4", Confidence: 0.95},
	}, "extract-bot")
	gt.NoError(t, err).Required()

	// Re-run against amended source text: known entries stay put, new
	// clauses attach, and the status stays completed.
	result, err := uc.ExtractClauses(ctx, sol.ID, []usecase.ClauseCandidate{
		{Number: "52.212-4", Confidence: 0.95},
		{Number: "252.204-7012", Confidence: 0.90},
	}, "extract-bot")
	gt.NoError(t, err).Required()
	gt.Array(t, result.Entries).Length(2)

	entries, err := uc.ListClauseEntries(ctx, sol.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(2)

	updated, err := uc.GetSolicitation(ctx, sol.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Status).Equal(types.SolicitationStatusExtractionComplete)
}

func TestMarkExtractionComplete(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	seedClause(t, uc, types.RegulationFamilyFAR, "52.212-4", types.RiskCategoryGeneral, 2)
	sol := seedSolicitationInExtraction(t, uc, types.ContractTypeFirmFixedPrice)

	_, err := uc.AddClauseManually(ctx, sol.ID, types.RegulationFamilyFAR, "52.212-4", "reviewer")
	gt.NoError(t, err).Required()

	updated, err := uc.MarkExtractionComplete(ctx, sol.ID, "reviewer")
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Status).Equal(types.SolicitationStatusExtractionComplete)

	_, err = uc.MarkExtractionComplete(ctx, sol.ID, "reviewer")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrInvalidState)).True()
}

func TestAddClauseManuallyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	seedClause(t, uc, types.RegulationFamilyFAR, "52.228-7", types.RiskCategoryIndemnification, 5)
	sol := seedSolicitationInExtraction(t, uc, types.ContractTypeCostReimbursable)

	first, err := uc.AddClauseManually(ctx, sol.ID, types.RegulationFamilyFAR, "52.228-7", "reviewer")
	gt.NoError(t, err).Required()
	gt.Value(t, first.Detection).Equal(types.DetectionMethodManual)

	second, err := uc.AddClauseManually(ctx, sol.ID, types.RegulationFamilyFAR, "52.228-7", "reviewer")
	gt.NoError(t, err).Required()
	gt.Number(t, second.ID).Equal(first.ID)

	entries, err := uc.ListClauseEntries(ctx, sol.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(1)
}

func TestAttestNoClauses(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	sol := seedSolicitationInExtraction(t, uc, types.ContractTypeTimeAndMaterials)

	updated, err := uc.AttestNoClauses(ctx, sol.ID, "capture-lead")
	gt.NoError(t, err).Required()
	gt.Bool(t, updated.NoClausesAttested).True()
	gt.Value(t, updated.Status).Equal(types.SolicitationStatusExtractionComplete)
}

func TestAttestNoClausesRejectedWhenEntriesExist(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	seedClause(t, uc, types.RegulationFamilyFAR, "52.212-4", types.RiskCategoryGeneral, 2)
	sol := seedSolicitationInExtraction(t, uc, types.ContractTypeTimeAndMaterials)

	_, err := uc.AddClauseManually(ctx, sol.ID, types.RegulationFamilyFAR, "52.212-4", "reviewer")
	gt.NoError(t, err).Required()

	_, err = uc.AttestNoClauses(ctx, sol.ID, "capture-lead")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrInvalidState)).True()
}
