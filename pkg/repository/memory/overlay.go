package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

type overlayRepository struct {
	mu       sync.RWMutex
	overlays map[clauseKey]*model.ClauseOverlay
	nextID   int64
}

func newOverlayRepository() *overlayRepository {
	return &overlayRepository{
		overlays: make(map[clauseKey]*model.ClauseOverlay),
		nextID:   1,
	}
}

func copyOverlay(o *model.ClauseOverlay) *model.ClauseOverlay {
	copied := *o
	if o.RiskCategory != nil {
		category := *o.RiskCategory
		copied.RiskCategory = &category
	}
	if o.RiskScore != nil {
		score := *o.RiskScore
		copied.RiskScore = &score
	}
	if o.FlowDown != nil {
		flowDown := *o.FlowDown
		copied.FlowDown = &flowDown
	}
	if o.Tags != nil {
		copied.Tags = append([]string(nil), o.Tags...)
	}
	return &copied
}

func (r *overlayRepository) Put(ctx context.Context, overlay *model.ClauseOverlay) (*model.ClauseOverlay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	key := clauseKey{family: overlay.Family, number: overlay.Number}

	stored := copyOverlay(overlay)
	if existing, exists := r.overlays[key]; exists {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.ID = r.nextID
		stored.CreatedAt = now
		r.nextID++
	}
	stored.UpdatedAt = now

	r.overlays[key] = stored
	return copyOverlay(stored), nil
}

func (r *overlayRepository) GetByNumber(ctx context.Context, family types.RegulationFamily, number string) (*model.ClauseOverlay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	overlay, exists := r.overlays[clauseKey{family: family, number: number}]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "overlay not found",
			goerr.V("family", family), goerr.V("number", number))
	}
	return copyOverlay(overlay), nil
}

func (r *overlayRepository) List(ctx context.Context) ([]*model.ClauseOverlay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	overlays := make([]*model.ClauseOverlay, 0, len(r.overlays))
	for _, overlay := range r.overlays {
		overlays = append(overlays, copyOverlay(overlay))
	}
	return overlays, nil
}
