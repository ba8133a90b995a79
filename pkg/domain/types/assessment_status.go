package types

import "fmt"

// AssessmentStatus is the review state of a clause risk assessment version
type AssessmentStatus string

const (
	AssessmentStatusSubmitted AssessmentStatus = "SUBMITTED"
	AssessmentStatusApproved  AssessmentStatus = "APPROVED"
	AssessmentStatusRejected  AssessmentStatus = "REJECTED"
)

// AllAssessmentStatuses returns all valid assessment statuses
func AllAssessmentStatuses() []AssessmentStatus {
	return []AssessmentStatus{
		AssessmentStatusSubmitted,
		AssessmentStatusApproved,
		AssessmentStatusRejected,
	}
}

// IsValid checks if the assessment status is valid
func (s AssessmentStatus) IsValid() bool {
	switch s {
	case AssessmentStatusSubmitted, AssessmentStatusApproved, AssessmentStatusRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the assessment status
func (s AssessmentStatus) String() string {
	return string(s)
}

// ParseAssessmentStatus parses a string into an AssessmentStatus
func ParseAssessmentStatus(s string) (AssessmentStatus, error) {
	status := AssessmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid assessment status: %s", s)
	}
	return status, nil
}
