package interfaces

import (
	"context"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// AuditRepository persists audit events. Events are append-only and never
// updated or deleted.
type AuditRepository interface {
	Append(ctx context.Context, event *model.AuditEvent) (*model.AuditEvent, error)
	ListByEntity(ctx context.Context, entityType types.EntityType, entityID string) ([]*model.AuditEvent, error)
}
