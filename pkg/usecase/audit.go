package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
	"github.com/govcon-lab/bidgate/pkg/utils/errutil"
)

// recordAudit appends an audit event on the success path of a state-changing
// operation. Failures are logged, never propagated: audit logging is the
// documented exception to the no-partial-writes rule.
func (uc *UseCases) recordAudit(ctx context.Context, event *model.AuditEvent) {
	if _, err := uc.repo.Audit().Append(ctx, event); err != nil {
		_ = errutil.Handle(ctx, err, "failed to record audit event")
	}
}

// ListAuditTrail returns the audit events of an entity in chronological order
func (uc *UseCases) ListAuditTrail(ctx context.Context, entityType types.EntityType, entityID string) ([]*model.AuditEvent, error) {
	events, err := uc.repo.Audit().ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list audit events",
			goerr.V("entityType", entityType), goerr.V("entityID", entityID))
	}
	return events, nil
}
