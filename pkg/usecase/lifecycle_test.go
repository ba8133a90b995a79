package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/govcon-lab/bidgate/pkg/domain/interfaces"
	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
	"github.com/govcon-lab/bidgate/pkg/repository/memory"
	"github.com/govcon-lab/bidgate/pkg/usecase"
)

// readyToBid drives a solicitation through extraction, assessment approval,
// and snapshot generation so only the gate itself remains
func readyToBid(t *testing.T, uc *usecase.UseCases) *model.Solicitation {
	t.Helper()
	ctx := context.Background()

	seedClause(t, uc, types.RegulationFamilyFAR, "52.212-4", types.RiskCategoryGeneral, 2)
	sol := seedSolicitationInExtraction(t, uc, types.ContractTypeTimeAndMaterials)

	result, err := uc.ExtractClauses(ctx, sol.ID, []usecase.ClauseCandidate{
		{Number: "52.212-4", Confidence: 0.9},
	}, "extract-bot")
	gt.NoError(t, err).Required()

	assessment, err := uc.SubmitAssessment(ctx, result.Entries[0].ID, model.FactorScores{
		Financial: 2, Cyber: 2, Liability: 2, Regulatory: 2, Performance: 2,
	}, "assessor")
	gt.NoError(t, err).Required()

	_, err = uc.ApproveAssessment(ctx, assessment.ID, "lead-reviewer")
	gt.NoError(t, err).Required()

	_, err = uc.GenerateSnapshot(ctx, sol.ID, "lead-reviewer")
	gt.NoError(t, err).Required()

	return sol
}

func TestApproveToBidReportsAllBlockers(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	sol := seedSolicitation(t, uc, types.ContractTypeTimeAndMaterials)

	// nothing is done yet: no clauses, no attestation, no snapshot. Every
	// failure must come back in one call.
	_, blockers, err := uc.ApproveToBid(ctx, sol.ID, "capture-lead")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrPreconditionBlocked)).True()
	gt.Array(t, blockers).Length(2)

	codes := map[model.BlockerCode]bool{}
	for _, b := range blockers {
		codes[b.Code] = true
	}
	gt.Bool(t, codes[model.BlockerExtractionIncomplete]).True()
	gt.Bool(t, codes[model.BlockerRiskLogStale]).True()
}

func TestApproveToBidBlocksOutstandingAssessments(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	seedClause(t, uc, types.RegulationFamilyFAR, "52.212-4", types.RiskCategoryGeneral, 2)
	seedClause(t, uc, types.RegulationFamilyDFARS, "252.204-7008", types.RiskCategoryCybersecurity, 3)
	sol := seedSolicitationInExtraction(t, uc, types.ContractTypeTimeAndMaterials)

	result, err := uc.ExtractClauses(ctx, sol.ID, []usecase.ClauseCandidate{
		{Number: "52.212-4", Confidence: 0.9},
		{Number: "252.204-7008", Confidence: 0.8},
	}, "extract-bot")
	gt.NoError(t, err).Required()

	// one entry assessed but not approved, one never assessed
	_, err = uc.SubmitAssessment(ctx, result.Entries[0].ID, model.FactorScores{
		Financial: 2, Cyber: 2, Liability: 2, Regulatory: 2, Performance: 2,
	}, "assessor")
	gt.NoError(t, err).Required()

	_, blockers, err := uc.ApproveToBid(ctx, sol.ID, "capture-lead")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrPreconditionBlocked)).True()

	found := false
	for _, b := range blockers {
		if b.Code == model.BlockerAssessmentsOutstanding {
			found = true
			gt.Number(t, b.Count).Equal(2)
		}
	}
	gt.Bool(t, found).True()
}

func TestApproveToBidBlocksMissingTierApproval(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	seedClause(t, uc, types.RegulationFamilyDFARS, "252.204-7012", types.RiskCategoryCybersecurity, 4)
	sol := seedSolicitationInExtraction(t, uc, types.ContractTypeCostReimbursable)

	result, err := uc.ExtractClauses(ctx, sol.ID, []usecase.ClauseCandidate{
		{Number: "252.204-7012", Confidence: 0.9},
	}, "extract-bot")
	gt.NoError(t, err).Required()

	assessment, err := uc.SubmitAssessment(ctx, result.Entries[0].ID, model.FactorScores{
		Financial: 4, Cyber: 4, Liability: 4, Regulatory: 4, Performance: 4,
	}, "assessor")
	gt.NoError(t, err).Required()

	_, err = uc.ApproveAssessment(ctx, assessment.ID, "lead-reviewer")
	gt.NoError(t, err).Required()
	_, err = uc.GenerateSnapshot(ctx, sol.ID, "lead-reviewer")
	gt.NoError(t, err).Required()

	// L4 clause with both tier approvals still pending
	_, blockers, err := uc.ApproveToBid(ctx, sol.ID, "capture-lead")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrPreconditionBlocked)).True()

	codes := map[model.BlockerCode]bool{}
	for _, b := range blockers {
		codes[b.Code] = true
	}
	gt.Bool(t, codes[model.BlockerQualityApprovalMissing]).True()
	gt.Bool(t, codes[model.BlockerExecutiveApprovalMissing]).True()

	// decide both tiers and the gate opens
	_, err = uc.RecordApprovalDecision(ctx, sol.ID, types.ApprovalTypeQuality, true, "quality-lead")
	gt.NoError(t, err).Required()
	_, err = uc.RecordApprovalDecision(ctx, sol.ID, types.ApprovalTypeExecutive, true, "vp-contracts")
	gt.NoError(t, err).Required()

	updated, blockers, err := uc.ApproveToBid(ctx, sol.ID, "capture-lead")
	gt.NoError(t, err).Required()
	gt.Array(t, blockers).Length(0)
	gt.Value(t, updated.Status).Equal(types.SolicitationStatusApprovedToBid)
}

func TestApproveToBidSucceedsAndIsFinal(t *testing.T) {
	ctx := context.Background()
	mock := newSlackMock()
	uc := usecase.New(memory.New(), usecase.WithSlackService(mock))

	sol := readyToBid(t, uc)

	updated, blockers, err := uc.ApproveToBid(ctx, sol.ID, "capture-lead")
	gt.NoError(t, err).Required()
	gt.Array(t, blockers).Length(0)
	gt.Value(t, updated.Status).Equal(types.SolicitationStatusApprovedToBid)

	gt.Value(t, mock.waitApproval(t)).Equal(sol.Number)

	// the decision is monotonic: a second approval attempt is rejected
	_, _, err = uc.ApproveToBid(ctx, sol.ID, "capture-lead")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrInvalidState)).True()
}

func TestApproveToBidBlocksStaleSnapshot(t *testing.T) {
	ctx := context.Background()

	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	uc := usecase.New(memory.New(), usecase.WithClock(func() time.Time { return now }))

	sol := readyToBid(t, uc)

	// push the clock past the freshness window
	now = now.Add(8 * 24 * time.Hour)

	_, blockers, err := uc.ApproveToBid(ctx, sol.ID, "capture-lead")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrPreconditionBlocked)).True()
	gt.Array(t, blockers).Length(1)
	gt.Value(t, blockers[0].Code).Equal(model.BlockerRiskLogStale)

	// regenerating the snapshot clears the blocker
	_, err = uc.GenerateSnapshot(ctx, sol.ID, "lead-reviewer")
	gt.NoError(t, err).Required()

	updated, _, err := uc.ApproveToBid(ctx, sol.ID, "capture-lead")
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Status).Equal(types.SolicitationStatusApprovedToBid)
}

// gateRaceRepository wraps a repository to run a hook on the snapshot read,
// the last read the bid gate performs before its status swap. The hook
// simulates a write landing while the gate is evaluating.
type gateRaceRepository struct {
	interfaces.Repository
	snapshots *gateRaceSnapshotRepository
}

func newGateRaceRepository(inner interfaces.Repository) *gateRaceRepository {
	return &gateRaceRepository{
		Repository: inner,
		snapshots:  &gateRaceSnapshotRepository{SnapshotRepository: inner.Snapshot()},
	}
}

func (r *gateRaceRepository) Snapshot() interfaces.SnapshotRepository {
	return r.snapshots
}

type gateRaceSnapshotRepository struct {
	interfaces.SnapshotRepository
	onLatest func()
}

func (r *gateRaceSnapshotRepository) Latest(ctx context.Context, solicitationID int64) (*model.RiskLogSnapshot, error) {
	if hook := r.onLatest; hook != nil {
		r.onLatest = nil
		hook()
	}
	return r.SnapshotRepository.Latest(ctx, solicitationID)
}

func TestApproveToBidDetectsConcurrentSubmission(t *testing.T) {
	ctx := context.Background()
	repo := newGateRaceRepository(memory.New())
	uc := usecase.New(repo)

	sol := readyToBid(t, uc)
	entries, err := uc.ListClauseEntries(ctx, sol.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(1)

	// a new assessment version lands after the gate has checked the entry
	// but before the status swap. Its low score leaves the status exactly
	// where the gate expects it, so only the revision betrays the change.
	repo.snapshots.onLatest = func() {
		_, err := uc.SubmitAssessment(ctx, entries[0].ID, model.FactorScores{
			Financial: 1, Cyber: 1, Liability: 1, Regulatory: 1, Performance: 1,
		}, "late-assessor")
		gt.NoError(t, err).Required()
	}

	_, _, err = uc.ApproveToBid(ctx, sol.ID, "capture-lead")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrInvalidState)).True()

	// the gate must not have finalized past the unapproved version
	current, err := uc.GetSolicitation(ctx, sol.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, current.Status.IsFinalized()).False()

	latest, err := uc.GetCurrentAssessment(ctx, entries[0].ID)
	gt.NoError(t, err).Required()
	gt.Value(t, latest.Status).Equal(types.AssessmentStatusSubmitted)

	// a retry re-evaluates and reports the new version as outstanding
	_, blockers, err := uc.ApproveToBid(ctx, sol.ID, "capture-lead")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrPreconditionBlocked)).True()

	found := false
	for _, b := range blockers {
		if b.Code == model.BlockerAssessmentsOutstanding {
			found = true
			gt.Number(t, b.Count).Equal(1)
		}
	}
	gt.Bool(t, found).True()
}

func TestRejectNoBidAndArchive(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	sol := seedSolicitationInExtraction(t, uc, types.ContractTypeTimeAndMaterials)

	// reject is allowed from any active review state
	updated, err := uc.AttestNoClauses(ctx, sol.ID, "capture-lead")
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Status).Equal(types.SolicitationStatusExtractionComplete)

	rejected, err := uc.RejectNoBid(ctx, sol.ID, "capture-lead")
	gt.NoError(t, err).Required()
	gt.Value(t, rejected.Status).Equal(types.SolicitationStatusRejectedNoBid)

	archived, err := uc.ArchiveSolicitation(ctx, sol.ID, "capture-lead")
	gt.NoError(t, err).Required()
	gt.Value(t, archived.Status).Equal(types.SolicitationStatusArchived)

	_, err = uc.ArchiveSolicitation(ctx, sol.ID, "capture-lead")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrInvalidState)).True()
}
