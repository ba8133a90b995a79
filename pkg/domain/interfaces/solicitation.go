package interfaces

import (
	"context"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// SolicitationRepository persists solicitations
type SolicitationRepository interface {
	Create(ctx context.Context, sol *model.Solicitation) (*model.Solicitation, error)
	Get(ctx context.Context, id int64) (*model.Solicitation, error)
	List(ctx context.Context) ([]*model.Solicitation, error)
	Update(ctx context.Context, sol *model.Solicitation) (*model.Solicitation, error)
	// UpdateStatus is a compare-and-swap on the (status, revision) pair: it
	// moves the solicitation from the expected current status to the next
	// one, failing with ErrConflict when either the stored status or the
	// stored revision no longer matches. Because every write bumps the
	// revision, a caller that reads the solicitation, checks preconditions
	// against other records, and then swaps the status is guaranteed to
	// fail here if any precondition-changing write landed in between, even
	// one that left the status itself untouched.
	UpdateStatus(ctx context.Context, id int64, from, to types.SolicitationStatus, revision int64) (*model.Solicitation, error)
}
