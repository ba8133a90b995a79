package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// FactorScores is the five-dimension score vector of a clause assessment.
// Each dimension is scored 0-5, where 0 means "not applicable" and is
// excluded from the weighted mean.
type FactorScores struct {
	Financial   int `json:"financial"`
	Cyber       int `json:"cyber"`
	Liability   int `json:"liability"`
	Regulatory  int `json:"regulatory"`
	Performance int `json:"performance"`
}

// ErrFactorOutOfRange is returned for factor scores outside [0,5]
var ErrFactorOutOfRange = goerr.New("factor score out of range")

// Validate checks every factor is within [0,5]
func (f FactorScores) Validate() error {
	for _, dim := range f.Dimensions() {
		if dim.Score < 0 || dim.Score > 5 {
			return goerr.Wrap(ErrFactorOutOfRange, "invalid factor score",
				goerr.V("dimension", dim.Name), goerr.V("score", dim.Score))
		}
	}
	return nil
}

// Dimension is a named factor score
type Dimension struct {
	Name  string
	Score int
}

// Dimensions returns the factor scores in canonical order
func (f FactorScores) Dimensions() []Dimension {
	return []Dimension{
		{Name: "financial", Score: f.Financial},
		{Name: "cyber", Score: f.Cyber},
		{Name: "liability", Score: f.Liability},
		{Name: "regulatory", Score: f.Regulatory},
		{Name: "performance", Score: f.Performance},
	}
}

// ClauseRiskAssessment is one version of the risk assessment of a clause
// entry. Versions are append-only; the highest version is current. Prior
// versions are retained for audit.
type ClauseRiskAssessment struct {
	ID           int64                  `json:"id"`
	EntryID      int64                  `json:"entry_id"`
	Version      int                    `json:"version"`
	Scores       FactorScores           `json:"scores"`
	Percent      int                    `json:"percent"` // 0-100, derived
	Level        types.RiskLevel        `json:"level"`
	Status       types.AssessmentStatus `json:"status"`
	RequiredTier types.ApprovalType     `json:"required_tier,omitempty"`
	Assessor     string                 `json:"assessor"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}
