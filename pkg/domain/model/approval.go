package model

import (
	"time"

	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// Approval is the sign-off record of one tier for one solicitation. Records
// are created lazily the first time a clause assessment demands the tier and
// are never deleted.
type Approval struct {
	ID             int64                `json:"id"`
	SolicitationID int64                `json:"solicitation_id"`
	Type           types.ApprovalType   `json:"type"`
	Status         types.ApprovalStatus `json:"status"`
	DecidedBy      string               `json:"decided_by,omitempty"`
	DecidedAt      *time.Time           `json:"decided_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}
