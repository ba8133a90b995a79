package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// SnapshotID identifies an immutable risk log snapshot
type SnapshotID string

// NewSnapshotID generates a new snapshot ID
func NewSnapshotID() SnapshotID {
	return SnapshotID(uuid.New().String())
}

// SnapshotClause is the point-in-time scored state of one clause entry
type SnapshotClause struct {
	EntryID  int64           `json:"entry_id"`
	ClauseID int64           `json:"clause_id"`
	Number   string          `json:"number"`
	Title    string          `json:"title"`
	Percent  int             `json:"percent"`
	Level    types.RiskLevel `json:"level"`
	Assessed bool            `json:"assessed"`
}

// RiskLogSnapshot is an immutable point-in-time summary of a solicitation's
// risk posture. Snapshots are append-only; freshness is measured purely by
// wall-clock age of GeneratedAt.
type RiskLogSnapshot struct {
	ID             SnapshotID       `json:"id"`
	SolicitationID int64            `json:"solicitation_id"`
	Clauses        []SnapshotClause `json:"clauses"`
	OverallScore   int              `json:"overall_score"`
	OverallLevel   types.RiskLevel  `json:"overall_level"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

// Age returns the wall-clock age of the snapshot at the given instant
func (s *RiskLogSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.GeneratedAt)
}
