package slack

import (
	"context"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
)

// Service posts governance notifications to Slack. Implementations must be
// safe for concurrent use.
type Service interface {
	// NotifyEscalation announces that a solicitation now requires executive
	// attention, with the clause assessment that triggered it
	NotifyEscalation(ctx context.Context, sol *model.Solicitation, assessment *model.ClauseRiskAssessment) error

	// NotifyApprovedToBid announces that a solicitation passed the bid gate
	NotifyApprovedToBid(ctx context.Context, sol *model.Solicitation) error
}
