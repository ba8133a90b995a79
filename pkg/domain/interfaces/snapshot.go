package interfaces

import (
	"context"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
)

// SnapshotRepository persists risk log snapshots. Snapshots are append-only
// and never mutated.
type SnapshotRepository interface {
	Append(ctx context.Context, snapshot *model.RiskLogSnapshot) (*model.RiskLogSnapshot, error)
	// Latest returns the most recently generated snapshot of the
	// solicitation
	Latest(ctx context.Context, solicitationID int64) (*model.RiskLogSnapshot, error)
	ListBySolicitation(ctx context.Context, solicitationID int64) ([]*model.RiskLogSnapshot, error)
}
