package interfaces

import (
	"context"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
)

// ClauseEntryRepository persists solicitation clause entries
type ClauseEntryRepository interface {
	// CreateIfAbsent attaches the clause to the solicitation. When an entry
	// for the (solicitation, clause) pair already exists it returns the
	// existing entry with created=false and writes nothing.
	CreateIfAbsent(ctx context.Context, entry *model.SolicitationClauseEntry) (created *model.SolicitationClauseEntry, isNew bool, err error)
	Get(ctx context.Context, id int64) (*model.SolicitationClauseEntry, error)
	ListBySolicitation(ctx context.Context, solicitationID int64) ([]*model.SolicitationClauseEntry, error)
}
