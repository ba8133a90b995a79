package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// GenerateSnapshot captures the solicitation's current risk posture as an
// immutable snapshot. State is re-read from the repository at generation
// time so the snapshot reflects stored reality, not cached derived fields.
func (uc *UseCases) GenerateSnapshot(ctx context.Context, solicitationID int64, actor string) (*model.RiskLogSnapshot, error) {
	if _, err := uc.GetSolicitation(ctx, solicitationID); err != nil {
		return nil, err
	}

	entries, err := uc.repo.ClauseEntry().ListBySolicitation(ctx, solicitationID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list clause entries", goerr.V(SolicitationIDKey, solicitationID))
	}

	clauses := make([]model.SnapshotClause, 0, len(entries))
	var percents []int
	for _, entry := range entries {
		clause, err := uc.GetClause(ctx, entry.ClauseID)
		if err != nil {
			return nil, err
		}

		sc := model.SnapshotClause{
			EntryID:  entry.ID,
			ClauseID: clause.ID,
			Number:   clause.Number,
			Title:    clause.Title,
		}
		if current, err := uc.repo.Assessment().GetCurrent(ctx, entry.ID); err == nil {
			sc.Percent = current.Percent
			sc.Level = current.Level
			sc.Assessed = true
			percents = append(percents, current.Percent)
		} else if !isRepoNotFound(err) {
			return nil, goerr.Wrap(err, "failed to get current assessment", goerr.V(EntryIDKey, entry.ID))
		}
		clauses = append(clauses, sc)
	}

	overall, overallLevel := uc.scorer.Aggregate(percents)

	snapshot, err := uc.repo.Snapshot().Append(ctx, &model.RiskLogSnapshot{
		SolicitationID: solicitationID,
		Clauses:        clauses,
		OverallScore:   overall,
		OverallLevel:   overallLevel,
		GeneratedAt:    uc.now().UTC(),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to append snapshot", goerr.V(SolicitationIDKey, solicitationID))
	}

	uc.recordAudit(ctx, &model.AuditEvent{
		EntityType: types.EntityTypeSnapshot,
		EntityID:   string(snapshot.ID),
		Action:     types.AuditActionSnapshot,
		NewValue:   fmt.Sprintf("%d%% (%s)", overall, overallLevel),
		Actor:      actor,
	})

	return snapshot, nil
}

// GetLatestSnapshot returns the most recent snapshot of a solicitation
func (uc *UseCases) GetLatestSnapshot(ctx context.Context, solicitationID int64) (*model.RiskLogSnapshot, error) {
	snapshot, err := uc.repo.Snapshot().Latest(ctx, solicitationID)
	if err != nil {
		if isRepoNotFound(err) {
			return nil, goerr.Wrap(ErrSnapshotNotFound, "no snapshot for solicitation",
				goerr.V(SolicitationIDKey, solicitationID))
		}
		return nil, goerr.Wrap(err, "failed to get latest snapshot", goerr.V(SolicitationIDKey, solicitationID))
	}
	return snapshot, nil
}

// ListSnapshots returns the snapshots of a solicitation, newest first
func (uc *UseCases) ListSnapshots(ctx context.Context, solicitationID int64) ([]*model.RiskLogSnapshot, error) {
	snapshots, err := uc.repo.Snapshot().ListBySolicitation(ctx, solicitationID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list snapshots", goerr.V(SolicitationIDKey, solicitationID))
	}
	return snapshots, nil
}
