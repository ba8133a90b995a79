package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

type clauseKey struct {
	family types.RegulationFamily
	number string
}

type clauseRepository struct {
	mu      sync.RWMutex
	clauses map[int64]*model.RegulatoryClause
	byKey   map[clauseKey]int64
	nextID  int64
}

func newClauseRepository() *clauseRepository {
	return &clauseRepository{
		clauses: make(map[int64]*model.RegulatoryClause),
		byKey:   make(map[clauseKey]int64),
		nextID:  1,
	}
}

func copyClause(c *model.RegulatoryClause) *model.RegulatoryClause {
	copied := *c
	return &copied
}

func (r *clauseRepository) Upsert(ctx context.Context, clause *model.RegulatoryClause) (*model.RegulatoryClause, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	key := clauseKey{family: clause.Family, number: clause.Number}

	if id, exists := r.byKey[key]; exists {
		existing := r.clauses[id]
		updated := copyClause(clause)
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = now
		r.clauses[id] = updated
		return copyClause(updated), nil
	}

	created := copyClause(clause)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.clauses[created.ID] = created
	r.byKey[key] = created.ID
	return copyClause(created), nil
}

func (r *clauseRepository) Get(ctx context.Context, id int64) (*model.RegulatoryClause, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clause, exists := r.clauses[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "clause not found", goerr.V("id", id))
	}
	return copyClause(clause), nil
}

func (r *clauseRepository) GetByNumber(ctx context.Context, family types.RegulationFamily, number string) (*model.RegulatoryClause, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byKey[clauseKey{family: family, number: number}]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "clause not found",
			goerr.V("family", family), goerr.V("number", number))
	}
	return copyClause(r.clauses[id]), nil
}

func (r *clauseRepository) FindByNumber(ctx context.Context, number string) (*model.RegulatoryClause, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, family := range types.AllRegulationFamilies() {
		if id, exists := r.byKey[clauseKey{family: family, number: number}]; exists {
			return copyClause(r.clauses[id]), nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "clause not found", goerr.V("number", number))
}

func (r *clauseRepository) List(ctx context.Context) ([]*model.RegulatoryClause, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clauses := make([]*model.RegulatoryClause, 0, len(r.clauses))
	for _, clause := range r.clauses {
		clauses = append(clauses, copyClause(clause))
	}
	return clauses, nil
}
