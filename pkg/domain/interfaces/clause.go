package interfaces

import (
	"context"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// ClauseRepository persists canonical regulatory clauses. Writes come only
// from the ingestion collaborator; the engine never mutates clause text or
// numbering.
type ClauseRepository interface {
	// Upsert inserts the clause, or updates the existing row keyed by
	// (family, number)
	Upsert(ctx context.Context, clause *model.RegulatoryClause) (*model.RegulatoryClause, error)
	Get(ctx context.Context, id int64) (*model.RegulatoryClause, error)
	GetByNumber(ctx context.Context, family types.RegulationFamily, number string) (*model.RegulatoryClause, error)
	// FindByNumber looks the number up across all regulation families
	FindByNumber(ctx context.Context, number string) (*model.RegulatoryClause, error)
	List(ctx context.Context) ([]*model.RegulatoryClause, error)
}
