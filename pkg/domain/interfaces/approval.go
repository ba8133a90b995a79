package interfaces

import (
	"context"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// ApprovalRepository persists per-tier approval records. There is at most
// one record per (solicitation, type); records are never deleted.
type ApprovalRepository interface {
	// GetOrCreate returns the existing record for the pair, creating it
	// with status PENDING when absent
	GetOrCreate(ctx context.Context, solicitationID int64, approvalType types.ApprovalType) (*model.Approval, error)
	Get(ctx context.Context, solicitationID int64, approvalType types.ApprovalType) (*model.Approval, error)
	ListBySolicitation(ctx context.Context, solicitationID int64) ([]*model.Approval, error)
	UpdateStatus(ctx context.Context, solicitationID int64, approvalType types.ApprovalType, status types.ApprovalStatus, decidedBy string) (*model.Approval, error)
}
