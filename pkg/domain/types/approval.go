package types

import "fmt"

// ApprovalType is the organizational tier whose sign-off a solicitation needs
type ApprovalType string

const (
	// ApprovalTypeNone marks assessments that need no tiered sign-off
	ApprovalTypeNone      ApprovalType = ""
	ApprovalTypeQuality   ApprovalType = "QUALITY"
	ApprovalTypeExecutive ApprovalType = "EXECUTIVE"
)

// AllApprovalTypes returns all approval tiers that produce approval records
func AllApprovalTypes() []ApprovalType {
	return []ApprovalType{
		ApprovalTypeQuality,
		ApprovalTypeExecutive,
	}
}

// IsValid checks if the approval type is a real tier
func (t ApprovalType) IsValid() bool {
	switch t {
	case ApprovalTypeQuality, ApprovalTypeExecutive:
		return true
	default:
		return false
	}
}

// String returns the string representation of the approval type
func (t ApprovalType) String() string {
	return string(t)
}

// ParseApprovalType parses a string into an ApprovalType
func ParseApprovalType(s string) (ApprovalType, error) {
	t := ApprovalType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid approval type: %s", s)
	}
	return t, nil
}

// TierForLevel returns the approval tier a clause risk level demands.
// L4 demands Executive, L3 demands Quality, everything below needs none.
func TierForLevel(level RiskLevel) ApprovalType {
	switch level {
	case RiskLevelL4:
		return ApprovalTypeExecutive
	case RiskLevelL3:
		return ApprovalTypeQuality
	default:
		return ApprovalTypeNone
	}
}

// ApprovalStatus is the decision state of an approval record
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// AllApprovalStatuses returns all valid approval statuses
func AllApprovalStatuses() []ApprovalStatus {
	return []ApprovalStatus{
		ApprovalStatusPending,
		ApprovalStatusApproved,
		ApprovalStatusRejected,
	}
}

// IsValid checks if the approval status is valid
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the approval status
func (s ApprovalStatus) String() string {
	return string(s)
}

// ParseApprovalStatus parses a string into an ApprovalStatus
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	status := ApprovalStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid approval status: %s", s)
	}
	return status, nil
}
