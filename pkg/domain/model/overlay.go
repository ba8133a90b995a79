package model

import (
	"time"

	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// ClauseOverlay carries organization-specific override values layered on a
// canonical clause. Keyed by (family, number); nil override fields fall
// through to the canonical base value.
type ClauseOverlay struct {
	ID           int64                  `json:"id"`
	Family       types.RegulationFamily `json:"family"`
	Number       string                 `json:"number"`
	RiskCategory *types.RiskCategory    `json:"risk_category,omitempty"`
	RiskScore    *int                   `json:"risk_score,omitempty"`
	FlowDown     *types.FlowDown        `json:"flow_down,omitempty"`
	Mitigation   string                 `json:"mitigation,omitempty"`
	Tags         []string               `json:"tags,omitempty"`
	Notes        string                 `json:"notes,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// Merge resolves the effective values of a clause against the overlay.
// Precedence is per field, not per document.
func (o *ClauseOverlay) Merge(clause *RegulatoryClause) *EffectiveClause {
	eff := &EffectiveClause{
		Clause:       clause,
		RiskCategory: clause.BaseRiskCategory,
		RiskScore:    clause.BaseRiskScore,
		FlowDown:     clause.BaseFlowDown,
	}
	if o == nil {
		return eff
	}

	eff.HasOverlay = true
	if o.RiskCategory != nil {
		eff.RiskCategory = *o.RiskCategory
	}
	if o.RiskScore != nil {
		eff.RiskScore = *o.RiskScore
	}
	if o.FlowDown != nil {
		eff.FlowDown = *o.FlowDown
	}
	eff.Mitigation = o.Mitigation
	eff.Tags = append([]string(nil), o.Tags...)
	eff.Notes = o.Notes
	return eff
}
