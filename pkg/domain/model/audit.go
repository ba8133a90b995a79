package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// AuditID identifies an audit event
type AuditID string

// NewAuditID generates a new audit event ID
func NewAuditID() AuditID {
	return AuditID(uuid.New().String())
}

// AuditEvent records one state-changing operation. Events are append-only
// and never updated or deleted.
type AuditEvent struct {
	ID         AuditID           `json:"id"`
	EntityType types.EntityType  `json:"entity_type"`
	EntityID   string            `json:"entity_id"`
	Action     types.AuditAction `json:"action"`
	Field      string            `json:"field,omitempty"`
	OldValue   string            `json:"old_value,omitempty"`
	NewValue   string            `json:"new_value,omitempty"`
	Actor      string            `json:"actor"`
	CreatedAt  time.Time         `json:"created_at"`
}
