package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

type solicitationRepository struct {
	mu            sync.RWMutex
	solicitations map[int64]*model.Solicitation
	nextID        int64
}

func newSolicitationRepository() *solicitationRepository {
	return &solicitationRepository{
		solicitations: make(map[int64]*model.Solicitation),
		nextID:        1,
	}
}

func copySolicitation(s *model.Solicitation) *model.Solicitation {
	copied := *s
	return &copied
}

func (r *solicitationRepository) Create(ctx context.Context, sol *model.Solicitation) (*model.Solicitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copySolicitation(sol)
	created.ID = r.nextID
	created.Status = sol.Status.Normalize()
	created.Revision = 1
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.solicitations[created.ID] = created
	return copySolicitation(created), nil
}

func (r *solicitationRepository) Get(ctx context.Context, id int64) (*model.Solicitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sol, exists := r.solicitations[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "solicitation not found", goerr.V("id", id))
	}
	return copySolicitation(sol), nil
}

func (r *solicitationRepository) List(ctx context.Context) ([]*model.Solicitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sols := make([]*model.Solicitation, 0, len(r.solicitations))
	for _, sol := range r.solicitations {
		sols = append(sols, copySolicitation(sol))
	}
	return sols, nil
}

func (r *solicitationRepository) Update(ctx context.Context, sol *model.Solicitation) (*model.Solicitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.solicitations[sol.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "solicitation not found", goerr.V("id", sol.ID))
	}

	updated := copySolicitation(sol)
	updated.Revision = existing.Revision + 1
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.solicitations[updated.ID] = updated
	return copySolicitation(updated), nil
}

func (r *solicitationRepository) UpdateStatus(ctx context.Context, id int64, from, to types.SolicitationStatus, revision int64) (*model.Solicitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.solicitations[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "solicitation not found", goerr.V("id", id))
	}
	if existing.Status != from {
		return nil, goerr.Wrap(ErrConflict, "solicitation status changed concurrently",
			goerr.V("id", id), goerr.V("expected", from), goerr.V("actual", existing.Status))
	}
	if existing.Revision != revision {
		return nil, goerr.Wrap(ErrConflict, "solicitation changed concurrently",
			goerr.V("id", id), goerr.V("expected", revision), goerr.V("actual", existing.Revision))
	}

	updated := copySolicitation(existing)
	updated.Status = to
	updated.Revision = existing.Revision + 1
	updated.UpdatedAt = time.Now().UTC()

	r.solicitations[id] = updated
	return copySolicitation(updated), nil
}
