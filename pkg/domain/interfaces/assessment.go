package interfaces

import (
	"context"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// AssessmentRepository persists clause risk assessments. Versions are
// append-only: a new submission is always a net-new row with the next
// version number, and prior versions are retained for audit. Only the
// status field of an existing version may be updated in place.
type AssessmentRepository interface {
	// Append stores the assessment as the next version for its entry
	Append(ctx context.Context, assessment *model.ClauseRiskAssessment) (*model.ClauseRiskAssessment, error)
	Get(ctx context.Context, id int64) (*model.ClauseRiskAssessment, error)
	// GetCurrent returns the highest-version assessment of the entry
	GetCurrent(ctx context.Context, entryID int64) (*model.ClauseRiskAssessment, error)
	ListByEntry(ctx context.Context, entryID int64) ([]*model.ClauseRiskAssessment, error)
	UpdateStatus(ctx context.Context, id int64, status types.AssessmentStatus) (*model.ClauseRiskAssessment, error)
}
