package model

import (
	"time"

	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// SolicitationClauseEntry links a solicitation to a regulatory clause. There
// is at most one entry per (solicitation, clause) pair; attaching an already
// attached clause is a no-op. The flow-down value is the effective value
// copied at attach time.
type SolicitationClauseEntry struct {
	ID             int64                 `json:"id"`
	SolicitationID int64                 `json:"solicitation_id"`
	ClauseID       int64                 `json:"clause_id"`
	Detection      types.DetectionMethod `json:"detection"`
	Confidence     float64               `json:"confidence"` // 0.0-1.0
	FlowDown       types.FlowDown        `json:"flow_down"`
	CreatedAt      time.Time             `json:"created_at"`
}
