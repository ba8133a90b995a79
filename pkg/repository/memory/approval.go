package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

type approvalKey struct {
	solicitationID int64
	approvalType   types.ApprovalType
}

type approvalRepository struct {
	mu        sync.RWMutex
	approvals map[approvalKey]*model.Approval
	nextID    int64
}

func newApprovalRepository() *approvalRepository {
	return &approvalRepository{
		approvals: make(map[approvalKey]*model.Approval),
		nextID:    1,
	}
}

func copyApproval(a *model.Approval) *model.Approval {
	copied := *a
	if a.DecidedAt != nil {
		decidedAt := *a.DecidedAt
		copied.DecidedAt = &decidedAt
	}
	return &copied
}

func (r *approvalRepository) GetOrCreate(ctx context.Context, solicitationID int64, approvalType types.ApprovalType) (*model.Approval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := approvalKey{solicitationID: solicitationID, approvalType: approvalType}
	if existing, exists := r.approvals[key]; exists {
		return copyApproval(existing), nil
	}

	now := time.Now().UTC()
	created := &model.Approval{
		ID:             r.nextID,
		SolicitationID: solicitationID,
		Type:           approvalType,
		Status:         types.ApprovalStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.nextID++

	r.approvals[key] = created
	return copyApproval(created), nil
}

func (r *approvalRepository) Get(ctx context.Context, solicitationID int64, approvalType types.ApprovalType) (*model.Approval, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	approval, exists := r.approvals[approvalKey{solicitationID: solicitationID, approvalType: approvalType}]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "approval not found",
			goerr.V("solicitationID", solicitationID), goerr.V("type", approvalType))
	}
	return copyApproval(approval), nil
}

func (r *approvalRepository) ListBySolicitation(ctx context.Context, solicitationID int64) ([]*model.Approval, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var approvals []*model.Approval
	for _, approval := range r.approvals {
		if approval.SolicitationID == solicitationID {
			approvals = append(approvals, copyApproval(approval))
		}
	}

	sort.Slice(approvals, func(i, j int) bool {
		return approvals[i].ID < approvals[j].ID
	})
	return approvals, nil
}

func (r *approvalRepository) UpdateStatus(ctx context.Context, solicitationID int64, approvalType types.ApprovalType, status types.ApprovalStatus, decidedBy string) (*model.Approval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := approvalKey{solicitationID: solicitationID, approvalType: approvalType}
	existing, exists := r.approvals[key]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "approval not found",
			goerr.V("solicitationID", solicitationID), goerr.V("type", approvalType))
	}

	now := time.Now().UTC()
	updated := copyApproval(existing)
	updated.Status = status
	updated.DecidedBy = decidedBy
	updated.DecidedAt = &now
	updated.UpdatedAt = now

	r.approvals[key] = updated
	return copyApproval(updated), nil
}
