package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
	"github.com/govcon-lab/bidgate/pkg/repository/firestore"
	"github.com/govcon-lab/bidgate/pkg/repository/memory"
)

func isRepoConflict(err error) bool {
	return errors.Is(err, memory.ErrConflict) || errors.Is(err, firestore.ErrConflict)
}

// CreateSolicitation registers a new solicitation in DRAFT
func (uc *UseCases) CreateSolicitation(ctx context.Context, sol *model.Solicitation, actor string) (*model.Solicitation, error) {
	if sol.Number == "" {
		return nil, goerr.Wrap(ErrValidationFailed, "solicitation number is required",
			goerr.V("field", "number"))
	}
	if sol.Title == "" {
		return nil, goerr.Wrap(ErrValidationFailed, "solicitation title is required",
			goerr.V("field", "title"))
	}
	if sol.ContractType != "" && !sol.ContractType.IsValid() {
		return nil, goerr.Wrap(ErrValidationFailed, "invalid contract type",
			goerr.V("field", "contract_type"), goerr.V("value", sol.ContractType))
	}

	sol.Status = types.SolicitationStatusDraft
	sol.OverallLevel = types.RiskLevelL1

	created, err := uc.repo.Solicitation().Create(ctx, sol)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create solicitation")
	}

	uc.recordAudit(ctx, &model.AuditEvent{
		EntityType: types.EntityTypeSolicitation,
		EntityID:   fmt.Sprintf("%d", created.ID),
		Action:     types.AuditActionCreate,
		Actor:      actor,
	})

	return created, nil
}

// GetSolicitation retrieves a solicitation by ID
func (uc *UseCases) GetSolicitation(ctx context.Context, id int64) (*model.Solicitation, error) {
	sol, err := uc.repo.Solicitation().Get(ctx, id)
	if err != nil {
		if isRepoNotFound(err) {
			return nil, goerr.Wrap(ErrSolicitationNotFound, "solicitation not found",
				goerr.V(SolicitationIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get solicitation", goerr.V(SolicitationIDKey, id))
	}
	return sol, nil
}

// ListSolicitations returns all solicitations
func (uc *UseCases) ListSolicitations(ctx context.Context) ([]*model.Solicitation, error) {
	sols, err := uc.repo.Solicitation().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list solicitations")
	}
	return sols, nil
}

// UpdateSolicitation applies a partial metadata update. Metadata is mutable
// only while the solicitation is in DRAFT or CLAUSE_EXTRACTION_PENDING.
func (uc *UseCases) UpdateSolicitation(ctx context.Context, id int64, update *model.SolicitationUpdate, actor string) (*model.Solicitation, error) {
	sol, err := uc.GetSolicitation(ctx, id)
	if err != nil {
		return nil, err
	}

	if !sol.Status.IsEditable() {
		return nil, goerr.Wrap(ErrInvalidState, "solicitation is no longer editable",
			goerr.V(SolicitationIDKey, id), goerr.V("status", sol.Status))
	}
	if update.IsEmpty() {
		return sol, nil
	}
	if update.Number != nil && *update.Number == "" {
		return nil, goerr.Wrap(ErrValidationFailed, "solicitation number cannot be cleared",
			goerr.V("field", "number"))
	}
	if update.ContractType != nil && !update.ContractType.IsValid() {
		return nil, goerr.Wrap(ErrValidationFailed, "invalid contract type",
			goerr.V("field", "contract_type"), goerr.V("value", *update.ContractType))
	}

	update.Apply(sol)

	updated, err := uc.repo.Solicitation().Update(ctx, sol)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update solicitation", goerr.V(SolicitationIDKey, id))
	}

	uc.recordAudit(ctx, &model.AuditEvent{
		EntityType: types.EntityTypeSolicitation,
		EntityID:   fmt.Sprintf("%d", id),
		Action:     types.AuditActionUpdate,
		Actor:      actor,
	})

	return updated, nil
}

// SubmitForExtraction moves a DRAFT solicitation into clause extraction
func (uc *UseCases) SubmitForExtraction(ctx context.Context, id int64, actor string) (*model.Solicitation, error) {
	sol, err := uc.GetSolicitation(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.transition(ctx, id, sol.Status, types.SolicitationStatusExtractionPending, sol.Revision, actor)
}

// RejectNoBid finalizes the solicitation as a no-bid decision
func (uc *UseCases) RejectNoBid(ctx context.Context, id int64, actor string) (*model.Solicitation, error) {
	sol, err := uc.GetSolicitation(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.transition(ctx, id, sol.Status, types.SolicitationStatusRejectedNoBid, sol.Revision, actor)
}

// ArchiveSolicitation archives a finalized solicitation. Solicitations are
// never hard-deleted.
func (uc *UseCases) ArchiveSolicitation(ctx context.Context, id int64, actor string) (*model.Solicitation, error) {
	sol, err := uc.GetSolicitation(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.transition(ctx, id, sol.Status, types.SolicitationStatusArchived, sol.Revision, actor)
}

// transition performs one lifecycle move with a compare-and-swap on the
// expected current status and revision
func (uc *UseCases) transition(ctx context.Context, id int64, from, to types.SolicitationStatus, revision int64, actor string) (*model.Solicitation, error) {
	if !from.CanTransitionTo(to) {
		return nil, goerr.Wrap(ErrInvalidState, "lifecycle transition not permitted",
			goerr.V(SolicitationIDKey, id), goerr.V("from", from), goerr.V("to", to))
	}

	updated, err := uc.repo.Solicitation().UpdateStatus(ctx, id, from, to, revision)
	if err != nil {
		if isRepoNotFound(err) {
			return nil, goerr.Wrap(ErrSolicitationNotFound, "solicitation not found",
				goerr.V(SolicitationIDKey, id))
		}
		if isRepoConflict(err) {
			return nil, goerr.Wrap(ErrInvalidState, "solicitation changed concurrently",
				goerr.V(SolicitationIDKey, id), goerr.V("expected", from), goerr.V("revision", revision))
		}
		return nil, goerr.Wrap(err, "failed to update solicitation status",
			goerr.V(SolicitationIDKey, id))
	}

	uc.recordAudit(ctx, &model.AuditEvent{
		EntityType: types.EntityTypeSolicitation,
		EntityID:   fmt.Sprintf("%d", id),
		Action:     types.AuditActionStatusChange,
		Field:      "status",
		OldValue:   from.String(),
		NewValue:   to.String(),
		Actor:      actor,
	})

	return updated, nil
}
