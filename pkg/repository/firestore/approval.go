package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

type approvalDocument struct {
	ID             int64      `firestore:"id"`
	SolicitationID int64      `firestore:"solicitation_id"`
	Type           string     `firestore:"type"`
	Status         string     `firestore:"status"`
	DecidedBy      string     `firestore:"decided_by"`
	DecidedAt      *time.Time `firestore:"decided_at"`
	CreatedAt      time.Time  `firestore:"created_at"`
	UpdatedAt      time.Time  `firestore:"updated_at"`
}

func (d *approvalDocument) toModel() *model.Approval {
	approval := &model.Approval{
		ID:             d.ID,
		SolicitationID: d.SolicitationID,
		Type:           types.ApprovalType(d.Type),
		Status:         types.ApprovalStatus(d.Status),
		DecidedBy:      d.DecidedBy,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if d.DecidedAt != nil {
		decidedAt := *d.DecidedAt
		approval.DecidedAt = &decidedAt
	}
	return approval
}

type approvalRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newApprovalRepository(client *firestore.Client) *approvalRepository {
	return &approvalRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *approvalRepository) approvalsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_approvals"
	}
	return "approvals"
}

func (r *approvalRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

// approvalDocID keys the document by the (solicitation, type) pair so the
// lazy-create path is naturally idempotent.
func approvalDocID(solicitationID int64, approvalType types.ApprovalType) string {
	return fmt.Sprintf("%d_%s", solicitationID, approvalType)
}

func (r *approvalRepository) GetOrCreate(ctx context.Context, solicitationID int64, approvalType types.ApprovalType) (*model.Approval, error) {
	docRef := r.client.Collection(r.approvalsCollection()).Doc(approvalDocID(solicitationID, approvalType))

	doc, err := docRef.Get(ctx)
	if err == nil {
		var existing approvalDocument
		if err := doc.DataTo(&existing); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal approval")
		}
		return existing.toModel(), nil
	}
	if status.Code(err) != codes.NotFound {
		return nil, goerr.Wrap(err, "failed to get approval",
			goerr.V("solicitationID", solicitationID), goerr.V("type", approvalType))
	}

	id, err := nextID(ctx, r.client, r.counterCollection(), "approval_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := &approvalDocument{
		ID:             id,
		SolicitationID: solicitationID,
		Type:           approvalType.String(),
		Status:         types.ApprovalStatusPending.String(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := docRef.Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create approval",
			goerr.V("solicitationID", solicitationID), goerr.V("type", approvalType))
	}

	return created.toModel(), nil
}

func (r *approvalRepository) Get(ctx context.Context, solicitationID int64, approvalType types.ApprovalType) (*model.Approval, error) {
	docRef := r.client.Collection(r.approvalsCollection()).Doc(approvalDocID(solicitationID, approvalType))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "approval not found",
				goerr.V("solicitationID", solicitationID), goerr.V("type", approvalType))
		}
		return nil, goerr.Wrap(err, "failed to get approval",
			goerr.V("solicitationID", solicitationID), goerr.V("type", approvalType))
	}

	var approvalDoc approvalDocument
	if err := doc.DataTo(&approvalDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal approval")
	}

	return approvalDoc.toModel(), nil
}

func (r *approvalRepository) ListBySolicitation(ctx context.Context, solicitationID int64) ([]*model.Approval, error) {
	iter := r.client.Collection(r.approvalsCollection()).
		Where("solicitation_id", "==", solicitationID).
		Documents(ctx)
	defer iter.Stop()

	var approvals []*model.Approval
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate approvals")
		}

		var approvalDoc approvalDocument
		if err := doc.DataTo(&approvalDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal approval")
		}
		approvals = append(approvals, approvalDoc.toModel())
	}

	return approvals, nil
}

func (r *approvalRepository) UpdateStatus(ctx context.Context, solicitationID int64, approvalType types.ApprovalType, approvalStatus types.ApprovalStatus, decidedBy string) (*model.Approval, error) {
	docRef := r.client.Collection(r.approvalsCollection()).Doc(approvalDocID(solicitationID, approvalType))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "approval not found",
				goerr.V("solicitationID", solicitationID), goerr.V("type", approvalType))
		}
		return nil, goerr.Wrap(err, "failed to get approval",
			goerr.V("solicitationID", solicitationID), goerr.V("type", approvalType))
	}

	var existing approvalDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal approval")
	}

	now := time.Now().UTC()
	existing.Status = approvalStatus.String()
	existing.DecidedBy = decidedBy
	existing.DecidedAt = &now
	existing.UpdatedAt = now

	if _, err := docRef.Set(ctx, &existing); err != nil {
		return nil, goerr.Wrap(err, "failed to update approval status",
			goerr.V("solicitationID", solicitationID), goerr.V("type", approvalType))
	}

	return existing.toModel(), nil
}
