package interfaces

import (
	"context"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// OverlayRepository persists organization clause overlays
type OverlayRepository interface {
	// Put inserts or replaces the overlay keyed by (family, number)
	Put(ctx context.Context, overlay *model.ClauseOverlay) (*model.ClauseOverlay, error)
	GetByNumber(ctx context.Context, family types.RegulationFamily, number string) (*model.ClauseOverlay, error)
	List(ctx context.Context) ([]*model.ClauseOverlay, error)
}
