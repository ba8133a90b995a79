package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
	"github.com/govcon-lab/bidgate/pkg/utils/async"
)

// ApproveToBid runs the bid gate: every precondition is re-evaluated from
// stored state at decision time, never trusted from cached flags. When any
// precondition fails the complete blocker list is returned alongside
// ErrPreconditionBlocked so the caller gets the full remediation picture in
// one round trip. The solicitation revision is captured before evaluation
// and the final status swap compares it, so any write that changed the
// evaluated facts in between, even one that left the status untouched, fails
// the swap instead of finalizing on stale preconditions.
func (uc *UseCases) ApproveToBid(ctx context.Context, solicitationID int64, actor string) (*model.Solicitation, []model.Blocker, error) {
	sol, err := uc.GetSolicitation(ctx, solicitationID)
	if err != nil {
		return nil, nil, err
	}
	if sol.Status.IsFinalized() {
		return nil, nil, goerr.Wrap(ErrInvalidState, "solicitation is already finalized",
			goerr.V(SolicitationIDKey, solicitationID), goerr.V("status", sol.Status))
	}

	blockers, err := uc.evaluateBidGate(ctx, sol)
	if err != nil {
		return nil, nil, err
	}
	if len(blockers) > 0 {
		return sol, blockers, goerr.Wrap(ErrPreconditionBlocked, "approve-to-bid preconditions not met",
			goerr.V(SolicitationIDKey, solicitationID), goerr.V(BlockersKey, blockers))
	}

	updated, err := uc.transition(ctx, solicitationID, sol.Status, types.SolicitationStatusApprovedToBid, sol.Revision, actor)
	if err != nil {
		return nil, nil, err
	}

	if uc.slackService != nil {
		notifySol := *updated
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.slackService.NotifyApprovedToBid(ctx, &notifySol)
		})
	}

	return updated, nil, nil
}

// evaluateBidGate checks every approve-to-bid precondition and returns all
// failures, never just the first
func (uc *UseCases) evaluateBidGate(ctx context.Context, sol *model.Solicitation) ([]model.Blocker, error) {
	var blockers []model.Blocker

	entries, err := uc.repo.ClauseEntry().ListBySolicitation(ctx, sol.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list clause entries", goerr.V(SolicitationIDKey, sol.ID))
	}

	if len(entries) == 0 && !sol.NoClausesAttested {
		blockers = append(blockers, model.Blocker{
			Code:    model.BlockerExtractionIncomplete,
			Message: "no clauses attached and no explicit no-clauses attestation",
		})
	}

	outstanding := 0
	anyL3 := false
	anyL4 := false
	for _, entry := range entries {
		current, err := uc.repo.Assessment().GetCurrent(ctx, entry.ID)
		if err != nil {
			if isRepoNotFound(err) {
				outstanding++
				continue
			}
			return nil, goerr.Wrap(err, "failed to get current assessment", goerr.V(EntryIDKey, entry.ID))
		}
		if current.Status != types.AssessmentStatusApproved {
			outstanding++
		}
		if current.Level.AtLeast(types.RiskLevelL3) {
			anyL3 = true
		}
		if current.Level == types.RiskLevelL4 {
			anyL4 = true
		}
	}
	if outstanding > 0 {
		blockers = append(blockers, model.Blocker{
			Code:    model.BlockerAssessmentsOutstanding,
			Message: fmt.Sprintf("%d clause entries lack an approved current assessment", outstanding),
			Count:   outstanding,
		})
	}

	if anyL3 {
		if blocker, err := uc.approvalBlocker(ctx, sol.ID, types.ApprovalTypeQuality, model.BlockerQualityApprovalMissing); err != nil {
			return nil, err
		} else if blocker != nil {
			blockers = append(blockers, *blocker)
		}
	}
	if anyL4 {
		if blocker, err := uc.approvalBlocker(ctx, sol.ID, types.ApprovalTypeExecutive, model.BlockerExecutiveApprovalMissing); err != nil {
			return nil, err
		} else if blocker != nil {
			blockers = append(blockers, *blocker)
		}
	}

	stale := true
	latest, err := uc.repo.Snapshot().Latest(ctx, sol.ID)
	if err != nil {
		if !isRepoNotFound(err) {
			return nil, goerr.Wrap(err, "failed to get latest snapshot", goerr.V(SolicitationIDKey, sol.ID))
		}
	} else if latest.Age(uc.now()) <= uc.scoringConfig.FreshnessWindow {
		stale = false
	}
	if stale {
		blockers = append(blockers, model.Blocker{
			Code:    model.BlockerRiskLogStale,
			Message: fmt.Sprintf("no risk log snapshot within the last %s", uc.scoringConfig.FreshnessWindow),
		})
	}

	return blockers, nil
}

func (uc *UseCases) approvalBlocker(ctx context.Context, solicitationID int64, tier types.ApprovalType, code model.BlockerCode) (*model.Blocker, error) {
	approval, err := uc.repo.Approval().Get(ctx, solicitationID, tier)
	if err != nil {
		if isRepoNotFound(err) {
			return &model.Blocker{
				Code:    code,
				Message: fmt.Sprintf("%s approval has not been requested", tier),
			}, nil
		}
		return nil, goerr.Wrap(err, "failed to get approval",
			goerr.V(SolicitationIDKey, solicitationID), goerr.V("tier", tier))
	}
	if approval.Status != types.ApprovalStatusApproved {
		return &model.Blocker{
			Code:    code,
			Message: fmt.Sprintf("%s approval is %s", tier, approval.Status),
		}, nil
	}
	return nil, nil
}
