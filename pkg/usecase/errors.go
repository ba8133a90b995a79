package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	// Not found errors
	ErrClauseNotFound       = errors.New("clause not found")
	ErrOverlayNotFound      = errors.New("overlay not found")
	ErrSolicitationNotFound = errors.New("solicitation not found")
	ErrEntryNotFound        = errors.New("clause entry not found")
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrApprovalNotFound     = errors.New("approval not found")
	ErrSnapshotNotFound     = errors.New("snapshot not found")

	// State errors
	ErrInvalidState = errors.New("operation not allowed in current lifecycle state")

	// Input errors
	ErrValidationFailed = errors.New("validation failed")

	// Gate errors
	ErrPreconditionBlocked = errors.New("approve-to-bid preconditions not met")
)

// Context keys for error values
const (
	SolicitationIDKey = "solicitation_id"
	ClauseNumberKey   = "clause_number"
	EntryIDKey        = "entry_id"
	AssessmentIDKey   = "assessment_id"
	BlockersKey       = "blockers"
)
