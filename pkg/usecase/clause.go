package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// ClauseCandidate is one clause-number string found in solicitation text by
// the extraction collaborator
type ClauseCandidate struct {
	Number     string
	Confidence float64
}

// ExtractionResult reports the outcome of a clause extraction run.
// Non-matching candidates are dropped silently and reported as a count.
type ExtractionResult struct {
	Entries []*model.SolicitationClauseEntry
	Dropped int
}

// ExtractClauses matches extraction candidates against the catalog and
// attaches the hits. Attachment is idempotent per (solicitation, clause)
// pair: extraction may re-run against the same source text safely, including
// after the first run has completed. On completion the solicitation advances
// to CLAUSE_EXTRACTION_COMPLETE.
func (uc *UseCases) ExtractClauses(ctx context.Context, solicitationID int64, candidates []ClauseCandidate, actor string) (*ExtractionResult, error) {
	sol, err := uc.GetSolicitation(ctx, solicitationID)
	if err != nil {
		return nil, err
	}
	if sol.Status != types.SolicitationStatusExtractionPending &&
		sol.Status != types.SolicitationStatusExtractionComplete {
		return nil, goerr.Wrap(ErrInvalidState, "solicitation is not awaiting clause extraction",
			goerr.V(SolicitationIDKey, solicitationID), goerr.V("status", sol.Status))
	}

	result := &ExtractionResult{}
	attachedNew := false
	for _, candidate := range candidates {
		entry, isNew, err := uc.attachClause(ctx, sol, candidate.Number, types.DetectionMethodExtracted, candidate.Confidence, actor)
		if err != nil {
			if errors.Is(err, ErrClauseNotFound) {
				result.Dropped++
				continue
			}
			return nil, err
		}
		if isNew {
			attachedNew = true
		}
		result.Entries = append(result.Entries, entry)
	}

	if attachedNew {
		if _, err := uc.refreshSolicitationRisk(ctx, sol); err != nil {
			return nil, err
		}
	}

	if sol.Status == types.SolicitationStatusExtractionPending {
		if _, err := uc.transition(ctx, solicitationID,
			types.SolicitationStatusExtractionPending, types.SolicitationStatusExtractionComplete, sol.Revision, actor); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// MarkExtractionComplete closes the extraction phase without running the
// extractor, used when every clause was attached manually
func (uc *UseCases) MarkExtractionComplete(ctx context.Context, solicitationID int64, actor string) (*model.Solicitation, error) {
	sol, err := uc.GetSolicitation(ctx, solicitationID)
	if err != nil {
		return nil, err
	}
	return uc.transition(ctx, solicitationID,
		sol.Status, types.SolicitationStatusExtractionComplete, sol.Revision, actor)
}

// AddClauseManually attaches a single clause found by a human reviewer.
// Duplicate attach is a silent no-op returning the existing entry.
func (uc *UseCases) AddClauseManually(ctx context.Context, solicitationID int64, family types.RegulationFamily, number string, actor string) (*model.SolicitationClauseEntry, error) {
	sol, err := uc.GetSolicitation(ctx, solicitationID)
	if err != nil {
		return nil, err
	}
	if sol.Status.IsFinalized() {
		return nil, goerr.Wrap(ErrInvalidState, "cannot attach clauses to a finalized solicitation",
			goerr.V(SolicitationIDKey, solicitationID), goerr.V("status", sol.Status))
	}

	effective, err := uc.ResolveEffectiveClause(ctx, family, number)
	if err != nil {
		return nil, err
	}

	entry, isNew, err := uc.repo.ClauseEntry().CreateIfAbsent(ctx, &model.SolicitationClauseEntry{
		SolicitationID: solicitationID,
		ClauseID:       effective.Clause.ID,
		Detection:      types.DetectionMethodManual,
		Confidence:     1.0,
		FlowDown:       effective.FlowDown,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to attach clause",
			goerr.V(SolicitationIDKey, solicitationID), goerr.V(ClauseNumberKey, number))
	}

	if isNew {
		uc.recordAudit(ctx, &model.AuditEvent{
			EntityType: types.EntityTypeClauseEntry,
			EntityID:   fmt.Sprintf("%d", entry.ID),
			Action:     types.AuditActionAttach,
			NewValue:   number,
			Actor:      actor,
		})
		if _, err := uc.refreshSolicitationRisk(ctx, sol); err != nil {
			return nil, err
		}
	}

	return entry, nil
}

// AttestNoClauses records an explicit attestation that no regulatory clauses
// apply to the solicitation, satisfying the extraction precondition of the
// approve-to-bid gate
func (uc *UseCases) AttestNoClauses(ctx context.Context, solicitationID int64, actor string) (*model.Solicitation, error) {
	sol, err := uc.GetSolicitation(ctx, solicitationID)
	if err != nil {
		return nil, err
	}
	if sol.Status != types.SolicitationStatusExtractionPending {
		return nil, goerr.Wrap(ErrInvalidState, "attestation is only valid during clause extraction",
			goerr.V(SolicitationIDKey, solicitationID), goerr.V("status", sol.Status))
	}

	entries, err := uc.repo.ClauseEntry().ListBySolicitation(ctx, solicitationID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list clause entries", goerr.V(SolicitationIDKey, solicitationID))
	}
	if len(entries) > 0 {
		return nil, goerr.Wrap(ErrInvalidState, "cannot attest no clauses when entries exist",
			goerr.V(SolicitationIDKey, solicitationID), goerr.V("entries", len(entries)))
	}

	sol.NoClausesAttested = true
	attested, err := uc.repo.Solicitation().Update(ctx, sol)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to record attestation", goerr.V(SolicitationIDKey, solicitationID))
	}

	updated, err := uc.transition(ctx, solicitationID,
		types.SolicitationStatusExtractionPending, types.SolicitationStatusExtractionComplete, attested.Revision, actor)
	if err != nil {
		return nil, err
	}

	uc.recordAudit(ctx, &model.AuditEvent{
		EntityType: types.EntityTypeSolicitation,
		EntityID:   fmt.Sprintf("%d", solicitationID),
		Action:     types.AuditActionAttest,
		Actor:      actor,
	})

	return updated, nil
}

// ListClauseEntries returns the clause entries of a solicitation
func (uc *UseCases) ListClauseEntries(ctx context.Context, solicitationID int64) ([]*model.SolicitationClauseEntry, error) {
	entries, err := uc.repo.ClauseEntry().ListBySolicitation(ctx, solicitationID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list clause entries", goerr.V(SolicitationIDKey, solicitationID))
	}
	return entries, nil
}

// attachClause resolves the clause and creates the entry if absent, copying
// the effective flow-down value at attach time. It reports whether a new
// entry was created so the caller can refresh the solicitation's derived
// risk state once per batch.
func (uc *UseCases) attachClause(ctx context.Context, sol *model.Solicitation, number string, detection types.DetectionMethod, confidence float64, actor string) (*model.SolicitationClauseEntry, bool, error) {
	effective, err := uc.ResolveEffectiveClause(ctx, "", number)
	if err != nil {
		return nil, false, err
	}

	entry, isNew, err := uc.repo.ClauseEntry().CreateIfAbsent(ctx, &model.SolicitationClauseEntry{
		SolicitationID: sol.ID,
		ClauseID:       effective.Clause.ID,
		Detection:      detection,
		Confidence:     confidence,
		FlowDown:       effective.FlowDown,
	})
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to attach clause",
			goerr.V(SolicitationIDKey, sol.ID), goerr.V(ClauseNumberKey, number))
	}

	if isNew {
		uc.recordAudit(ctx, &model.AuditEvent{
			EntityType: types.EntityTypeClauseEntry,
			EntityID:   fmt.Sprintf("%d", entry.ID),
			Action:     types.AuditActionAttach,
			NewValue:   number,
			Actor:      actor,
		})
	}

	return entry, isNew, nil
}
