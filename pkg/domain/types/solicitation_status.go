package types

import "fmt"

// SolicitationStatus represents the lifecycle state of a solicitation
type SolicitationStatus string

const (
	SolicitationStatusDraft              SolicitationStatus = "DRAFT"
	SolicitationStatusExtractionPending  SolicitationStatus = "CLAUSE_EXTRACTION_PENDING"
	SolicitationStatusExtractionComplete SolicitationStatus = "CLAUSE_EXTRACTION_COMPLETE"
	SolicitationStatusReviewInProgress   SolicitationStatus = "REVIEW_IN_PROGRESS"
	SolicitationStatusReviewComplete     SolicitationStatus = "REVIEW_COMPLETE"
	SolicitationStatusApprovalRequired   SolicitationStatus = "APPROVAL_REQUIRED"
	SolicitationStatusApprovedToBid      SolicitationStatus = "APPROVED_TO_BID"
	SolicitationStatusRejectedNoBid      SolicitationStatus = "REJECTED_NO_BID"
	SolicitationStatusArchived           SolicitationStatus = "ARCHIVED"
)

// AllSolicitationStatuses returns all valid solicitation statuses in
// lifecycle order
func AllSolicitationStatuses() []SolicitationStatus {
	return []SolicitationStatus{
		SolicitationStatusDraft,
		SolicitationStatusExtractionPending,
		SolicitationStatusExtractionComplete,
		SolicitationStatusReviewInProgress,
		SolicitationStatusReviewComplete,
		SolicitationStatusApprovalRequired,
		SolicitationStatusApprovedToBid,
		SolicitationStatusRejectedNoBid,
		SolicitationStatusArchived,
	}
}

// IsValid checks if the solicitation status is valid
func (s SolicitationStatus) IsValid() bool {
	switch s {
	case SolicitationStatusDraft,
		SolicitationStatusExtractionPending,
		SolicitationStatusExtractionComplete,
		SolicitationStatusReviewInProgress,
		SolicitationStatusReviewComplete,
		SolicitationStatusApprovalRequired,
		SolicitationStatusApprovedToBid,
		SolicitationStatusRejectedNoBid,
		SolicitationStatusArchived:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as DRAFT
func (s SolicitationStatus) Normalize() SolicitationStatus {
	if s == "" {
		return SolicitationStatusDraft
	}
	return s
}

// IsTerminal reports whether the status admits no further transitions other
// than archival
func (s SolicitationStatus) IsTerminal() bool {
	switch s {
	case SolicitationStatusApprovedToBid,
		SolicitationStatusRejectedNoBid,
		SolicitationStatusArchived:
		return true
	default:
		return false
	}
}

// IsFinalized reports whether the solicitation has reached a bid/no-bid
// decision or has been archived
func (s SolicitationStatus) IsFinalized() bool {
	return s.IsTerminal()
}

// IsEditable reports whether solicitation metadata may still be mutated
func (s SolicitationStatus) IsEditable() bool {
	switch s {
	case SolicitationStatusDraft, SolicitationStatusExtractionPending:
		return true
	default:
		return false
	}
}

// transitions is the one-directional adjacency of the lifecycle. The
// approve-to-bid gate and the reject/archive operations are the only callers
// that may skip intermediate review states.
var transitions = map[SolicitationStatus][]SolicitationStatus{
	SolicitationStatusDraft: {
		SolicitationStatusExtractionPending,
	},
	SolicitationStatusExtractionPending: {
		SolicitationStatusExtractionComplete,
	},
	SolicitationStatusExtractionComplete: {
		SolicitationStatusReviewInProgress,
		SolicitationStatusApprovedToBid,
		SolicitationStatusRejectedNoBid,
	},
	SolicitationStatusReviewInProgress: {
		SolicitationStatusReviewComplete,
		SolicitationStatusRejectedNoBid,
	},
	SolicitationStatusReviewComplete: {
		SolicitationStatusApprovalRequired,
		SolicitationStatusApprovedToBid,
		SolicitationStatusRejectedNoBid,
	},
	SolicitationStatusApprovalRequired: {
		SolicitationStatusApprovedToBid,
		SolicitationStatusRejectedNoBid,
	},
	SolicitationStatusApprovedToBid: {
		SolicitationStatusArchived,
	},
	SolicitationStatusRejectedNoBid: {
		SolicitationStatusArchived,
	},
	SolicitationStatusArchived: {},
}

// CanTransitionTo reports whether the lifecycle permits moving from s to next
func (s SolicitationStatus) CanTransitionTo(next SolicitationStatus) bool {
	for _, allowed := range transitions[s.Normalize()] {
		if allowed == next {
			return true
		}
	}
	return false
}

// String returns the string representation of the solicitation status
func (s SolicitationStatus) String() string {
	return string(s)
}

// ParseSolicitationStatus parses a string into a SolicitationStatus
func ParseSolicitationStatus(s string) (SolicitationStatus, error) {
	status := SolicitationStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid solicitation status: %s", s)
	}
	return status, nil
}
