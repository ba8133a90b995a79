package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
)

type snapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[int64][]*model.RiskLogSnapshot
}

func newSnapshotRepository() *snapshotRepository {
	return &snapshotRepository{
		snapshots: make(map[int64][]*model.RiskLogSnapshot),
	}
}

func copySnapshot(s *model.RiskLogSnapshot) *model.RiskLogSnapshot {
	copied := *s
	copied.Clauses = append([]model.SnapshotClause(nil), s.Clauses...)
	return &copied
}

func (r *snapshotRepository) Append(ctx context.Context, snapshot *model.RiskLogSnapshot) (*model.RiskLogSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copySnapshot(snapshot)
	if created.ID == "" {
		created.ID = model.NewSnapshotID()
	}
	if created.GeneratedAt.IsZero() {
		created.GeneratedAt = time.Now().UTC()
	}

	r.snapshots[created.SolicitationID] = append(r.snapshots[created.SolicitationID], created)
	return copySnapshot(created), nil
}

func (r *snapshotRepository) Latest(ctx context.Context, solicitationID int64) (*model.RiskLogSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.snapshots[solicitationID]
	if len(bucket) == 0 {
		return nil, goerr.Wrap(ErrNotFound, "no snapshot for solicitation",
			goerr.V("solicitationID", solicitationID))
	}

	latest := bucket[0]
	for _, s := range bucket[1:] {
		if s.GeneratedAt.After(latest.GeneratedAt) {
			latest = s
		}
	}
	return copySnapshot(latest), nil
}

func (r *snapshotRepository) ListBySolicitation(ctx context.Context, solicitationID int64) ([]*model.RiskLogSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.snapshots[solicitationID]
	snapshots := make([]*model.RiskLogSnapshot, 0, len(bucket))
	for _, s := range bucket {
		snapshots = append(snapshots, copySnapshot(s))
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].GeneratedAt.After(snapshots[j].GeneratedAt)
	})
	return snapshots, nil
}
