package model

import (
	"time"

	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// Solicitation is a federal-contract solicitation moving through the pre-bid
// governance workflow. Solicitations are never hard-deleted; they are
// archived instead.
type Solicitation struct {
	ID               int64                    `json:"id"`
	Number           string                   `json:"number"`
	Title            string                   `json:"title"`
	Agency           string                   `json:"agency,omitempty"`
	ContractType     types.ContractType       `json:"contract_type,omitempty"`
	AnticipatedValue int64                    `json:"anticipated_value,omitempty"` // whole dollars
	DueDate          time.Time                `json:"due_date,omitzero"`
	Status           types.SolicitationStatus `json:"status"`
	Owner            string                   `json:"owner,omitempty"`

	// Revision increments on every write, including writes triggered by
	// changes to the solicitation's clause entries, assessments, and
	// approvals. The approve-to-bid gate compares it on the final status
	// swap to detect concurrent changes to the facts it evaluated.
	Revision int64 `json:"revision"`

	// Derived fields, recomputed whenever assessments change
	OverallScore            int             `json:"overall_score"` // 0-100
	OverallLevel            types.RiskLevel `json:"overall_level"`
	CyberReviewRequired     bool            `json:"cyber_review_required"`
	FinancialReviewRequired bool            `json:"financial_review_required"`
	EscalationRequired      bool            `json:"escalation_required"`

	NoClausesAttested bool `json:"no_clauses_attested"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SolicitationUpdate enumerates every metadata field that may legally be
// mutated while a solicitation is editable. Nil fields are left unchanged.
type SolicitationUpdate struct {
	Number           *string             `json:"number,omitempty"`
	Title            *string             `json:"title,omitempty"`
	Agency           *string             `json:"agency,omitempty"`
	ContractType     *types.ContractType `json:"contract_type,omitempty"`
	AnticipatedValue *int64              `json:"anticipated_value,omitempty"`
	DueDate          *time.Time          `json:"due_date,omitempty"`
	Owner            *string             `json:"owner,omitempty"`
}

// IsEmpty reports whether the update would change nothing
func (u *SolicitationUpdate) IsEmpty() bool {
	return u.Number == nil && u.Title == nil && u.Agency == nil &&
		u.ContractType == nil && u.AnticipatedValue == nil &&
		u.DueDate == nil && u.Owner == nil
}

// Apply copies the present fields onto the solicitation
func (u *SolicitationUpdate) Apply(s *Solicitation) {
	if u.Number != nil {
		s.Number = *u.Number
	}
	if u.Title != nil {
		s.Title = *u.Title
	}
	if u.Agency != nil {
		s.Agency = *u.Agency
	}
	if u.ContractType != nil {
		s.ContractType = *u.ContractType
	}
	if u.AnticipatedValue != nil {
		s.AnticipatedValue = *u.AnticipatedValue
	}
	if u.DueDate != nil {
		s.DueDate = *u.DueDate
	}
	if u.Owner != nil {
		s.Owner = *u.Owner
	}
}
