package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// RecordApprovalDecision records a tier's sign-off decision on a
// solicitation. The approval record must already exist; records are created
// by assessment submission, never by the decision itself.
func (uc *UseCases) RecordApprovalDecision(ctx context.Context, solicitationID int64, tier types.ApprovalType, approve bool, decidedBy string) (*model.Approval, error) {
	if !tier.IsValid() {
		return nil, goerr.Wrap(ErrValidationFailed, "invalid approval tier",
			goerr.V("field", "tier"), goerr.V("value", tier))
	}

	if _, err := uc.repo.Approval().Get(ctx, solicitationID, tier); err != nil {
		if isRepoNotFound(err) {
			return nil, goerr.Wrap(ErrApprovalNotFound, "no approval of this tier is required",
				goerr.V(SolicitationIDKey, solicitationID), goerr.V("tier", tier))
		}
		return nil, goerr.Wrap(err, "failed to get approval",
			goerr.V(SolicitationIDKey, solicitationID), goerr.V("tier", tier))
	}

	status := types.ApprovalStatusApproved
	action := types.AuditActionApprove
	if !approve {
		status = types.ApprovalStatusRejected
		action = types.AuditActionReject
	}

	updated, err := uc.repo.Approval().UpdateStatus(ctx, solicitationID, tier, status, decidedBy)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update approval status",
			goerr.V(SolicitationIDKey, solicitationID), goerr.V("tier", tier))
	}

	// a decision is a bid-gate fact, so bump the solicitation so an
	// in-flight approve-to-bid cannot finalize past it
	if sol, err := uc.GetSolicitation(ctx, solicitationID); err != nil {
		return nil, err
	} else if !sol.Status.IsFinalized() {
		if _, err := uc.refreshSolicitationRisk(ctx, sol); err != nil {
			return nil, err
		}
	}

	uc.recordAudit(ctx, &model.AuditEvent{
		EntityType: types.EntityTypeApproval,
		EntityID:   fmt.Sprintf("%d", updated.ID),
		Action:     action,
		Field:      "status",
		NewValue:   status.String(),
		Actor:      decidedBy,
	})

	return updated, nil
}

// ListApprovals returns the approval records of a solicitation
func (uc *UseCases) ListApprovals(ctx context.Context, solicitationID int64) ([]*model.Approval, error) {
	approvals, err := uc.repo.Approval().ListBySolicitation(ctx, solicitationID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list approvals", goerr.V(SolicitationIDKey, solicitationID))
	}
	return approvals, nil
}
