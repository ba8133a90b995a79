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

func isRepoNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}

// IngestClause inserts or updates a canonical clause. This is the only write
// path into the catalog; it comes from the ingestion collaborator.
func (uc *UseCases) IngestClause(ctx context.Context, clause *model.RegulatoryClause, actor string) (*model.RegulatoryClause, error) {
	if !clause.Family.IsValid() {
		return nil, goerr.Wrap(ErrValidationFailed, "invalid regulation family",
			goerr.V("field", "family"), goerr.V("value", clause.Family))
	}
	if clause.Number == "" {
		return nil, goerr.Wrap(ErrValidationFailed, "clause number is required",
			goerr.V("field", "number"))
	}
	if clause.BaseRiskScore < 1 || clause.BaseRiskScore > 5 {
		return nil, goerr.Wrap(ErrValidationFailed, "base risk score must be within [1,5]",
			goerr.V("field", "base_risk_score"), goerr.V("value", clause.BaseRiskScore))
	}

	created, err := uc.repo.Clause().Upsert(ctx, clause)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upsert clause",
			goerr.V(ClauseNumberKey, clause.Number))
	}

	uc.recordAudit(ctx, &model.AuditEvent{
		EntityType: types.EntityTypeClause,
		EntityID:   fmt.Sprintf("%d", created.ID),
		Action:     types.AuditActionUpdate,
		Actor:      actor,
	})

	return created, nil
}

// GetClause retrieves a canonical clause by ID
func (uc *UseCases) GetClause(ctx context.Context, id int64) (*model.RegulatoryClause, error) {
	clause, err := uc.repo.Clause().Get(ctx, id)
	if err != nil {
		if isRepoNotFound(err) {
			return nil, goerr.Wrap(ErrClauseNotFound, "clause not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get clause", goerr.V("id", id))
	}
	return clause, nil
}

// ListClauses returns the full canonical catalog
func (uc *UseCases) ListClauses(ctx context.Context) ([]*model.RegulatoryClause, error) {
	clauses, err := uc.repo.Clause().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list clauses")
	}
	return clauses, nil
}

// ResolveEffectiveClause merges the canonical clause with its organization
// overlay. When family is empty the number is looked up across all families.
// Precedence is per field: each non-null override wins, everything else falls
// through to the canonical base value.
func (uc *UseCases) ResolveEffectiveClause(ctx context.Context, family types.RegulationFamily, number string) (*model.EffectiveClause, error) {
	var clause *model.RegulatoryClause
	var err error
	if family == "" {
		clause, err = uc.repo.Clause().FindByNumber(ctx, number)
	} else {
		clause, err = uc.repo.Clause().GetByNumber(ctx, family, number)
	}
	if err != nil {
		if isRepoNotFound(err) {
			return nil, goerr.Wrap(ErrClauseNotFound, "clause not found",
				goerr.V(ClauseNumberKey, number), goerr.V("family", family))
		}
		return nil, goerr.Wrap(err, "failed to get clause", goerr.V(ClauseNumberKey, number))
	}

	overlay, err := uc.repo.Overlay().GetByNumber(ctx, clause.Family, clause.Number)
	if err != nil {
		if !isRepoNotFound(err) {
			return nil, goerr.Wrap(err, "failed to get overlay", goerr.V(ClauseNumberKey, number))
		}
		overlay = nil
	}

	return overlay.Merge(clause), nil
}

// PutOverlay inserts or replaces an organization overlay. The overlay must
// reference an existing canonical clause; orphaned overlays are rejected and
// nothing is written.
func (uc *UseCases) PutOverlay(ctx context.Context, overlay *model.ClauseOverlay, actor string) (*model.ClauseOverlay, error) {
	if !overlay.Family.IsValid() {
		return nil, goerr.Wrap(ErrValidationFailed, "invalid regulation family",
			goerr.V("field", "family"), goerr.V("value", overlay.Family))
	}
	if overlay.RiskScore != nil && (*overlay.RiskScore < 1 || *overlay.RiskScore > 5) {
		return nil, goerr.Wrap(ErrValidationFailed, "risk score override must be within [1,5]",
			goerr.V("field", "risk_score"), goerr.V("value", *overlay.RiskScore))
	}

	if _, err := uc.repo.Clause().GetByNumber(ctx, overlay.Family, overlay.Number); err != nil {
		if isRepoNotFound(err) {
			return nil, goerr.Wrap(ErrClauseNotFound, "overlay references unknown clause",
				goerr.V(ClauseNumberKey, overlay.Number), goerr.V("family", overlay.Family))
		}
		return nil, goerr.Wrap(err, "failed to check canonical clause",
			goerr.V(ClauseNumberKey, overlay.Number))
	}

	created, err := uc.repo.Overlay().Put(ctx, overlay)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to put overlay", goerr.V(ClauseNumberKey, overlay.Number))
	}

	uc.recordAudit(ctx, &model.AuditEvent{
		EntityType: types.EntityTypeOverlay,
		EntityID:   fmt.Sprintf("%d", created.ID),
		Action:     types.AuditActionUpdate,
		Actor:      actor,
	})

	return created, nil
}

// GetOverlay returns the organization overlay for one clause
func (uc *UseCases) GetOverlay(ctx context.Context, family types.RegulationFamily, number string) (*model.ClauseOverlay, error) {
	overlay, err := uc.repo.Overlay().GetByNumber(ctx, family, number)
	if err != nil {
		if isRepoNotFound(err) {
			return nil, goerr.Wrap(ErrOverlayNotFound, "overlay not found",
				goerr.V(ClauseNumberKey, number), goerr.V("family", family))
		}
		return nil, goerr.Wrap(err, "failed to get overlay", goerr.V(ClauseNumberKey, number))
	}
	return overlay, nil
}

// ListOverlays returns all organization overlays
func (uc *UseCases) ListOverlays(ctx context.Context) ([]*model.ClauseOverlay, error) {
	overlays, err := uc.repo.Overlay().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list overlays")
	}
	return overlays, nil
}
