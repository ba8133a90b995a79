package model

import (
	"time"

	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// RegulatoryClause is a canonical clause from the regulation catalog. It is
// written only by the ingestion collaborator; the engine treats it as
// read-only.
type RegulatoryClause struct {
	ID               int64                  `json:"id"`
	Family           types.RegulationFamily `json:"family"`
	Number           string                 `json:"number"` // normalized, unique per family
	Title            string                 `json:"title"`
	FullText         string                 `json:"full_text,omitempty"`
	Part             string                 `json:"part,omitempty"`
	Subpart          string                 `json:"subpart,omitempty"`
	BaseRiskCategory types.RiskCategory     `json:"base_risk_category"`
	BaseRiskScore    int                    `json:"base_risk_score"` // 1-5
	BaseFlowDown     types.FlowDown         `json:"base_flow_down"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// EffectiveClause is the field-by-field merge of a canonical clause with its
// organization overlay. Each field holds the overlay override when present,
// otherwise the canonical base value.
type EffectiveClause struct {
	Clause       *RegulatoryClause  `json:"clause"`
	RiskCategory types.RiskCategory `json:"risk_category"`
	RiskScore    int                `json:"risk_score"`
	FlowDown     types.FlowDown     `json:"flow_down"`
	Mitigation   string             `json:"mitigation,omitempty"`
	Tags         []string           `json:"tags,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	HasOverlay   bool               `json:"has_overlay"`
}
