package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
)

type entryKey struct {
	solicitationID int64
	clauseID       int64
}

type clauseEntryRepository struct {
	mu      sync.RWMutex
	entries map[int64]*model.SolicitationClauseEntry
	byKey   map[entryKey]int64
	nextID  int64
}

func newClauseEntryRepository() *clauseEntryRepository {
	return &clauseEntryRepository{
		entries: make(map[int64]*model.SolicitationClauseEntry),
		byKey:   make(map[entryKey]int64),
		nextID:  1,
	}
}

func copyEntry(e *model.SolicitationClauseEntry) *model.SolicitationClauseEntry {
	copied := *e
	return &copied
}

func (r *clauseEntryRepository) CreateIfAbsent(ctx context.Context, entry *model.SolicitationClauseEntry) (*model.SolicitationClauseEntry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entryKey{solicitationID: entry.SolicitationID, clauseID: entry.ClauseID}
	if id, exists := r.byKey[key]; exists {
		return copyEntry(r.entries[id]), false, nil
	}

	created := copyEntry(entry)
	created.ID = r.nextID
	created.CreatedAt = time.Now().UTC()
	r.nextID++

	r.entries[created.ID] = created
	r.byKey[key] = created.ID
	return copyEntry(created), true, nil
}

func (r *clauseEntryRepository) Get(ctx context.Context, id int64) (*model.SolicitationClauseEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "clause entry not found", goerr.V("id", id))
	}
	return copyEntry(entry), nil
}

func (r *clauseEntryRepository) ListBySolicitation(ctx context.Context, solicitationID int64) ([]*model.SolicitationClauseEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []*model.SolicitationClauseEntry
	for _, entry := range r.entries {
		if entry.SolicitationID == solicitationID {
			entries = append(entries, copyEntry(entry))
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}
