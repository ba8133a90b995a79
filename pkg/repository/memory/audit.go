package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

type auditRepository struct {
	mu     sync.RWMutex
	events []*model.AuditEvent
}

func newAuditRepository() *auditRepository {
	return &auditRepository{}
}

func copyAuditEvent(e *model.AuditEvent) *model.AuditEvent {
	copied := *e
	return &copied
}

func (r *auditRepository) Append(ctx context.Context, event *model.AuditEvent) (*model.AuditEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyAuditEvent(event)
	if created.ID == "" {
		created.ID = model.NewAuditID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.events = append(r.events, created)
	return copyAuditEvent(created), nil
}

func (r *auditRepository) ListByEntity(ctx context.Context, entityType types.EntityType, entityID string) ([]*model.AuditEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var events []*model.AuditEvent
	for _, e := range r.events {
		if e.EntityType == entityType && e.EntityID == entityID {
			events = append(events, copyAuditEvent(e))
		}
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}
