package model

import "time"

// MaturityPillar is one of the seven governance-maturity pillars. Score is
// 0-20, derived from Rate (0.0-1.0). Rates with a zero denominator default
// to 1.0: an organization is not penalized for data it never had the chance
// to produce.
type MaturityPillar struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Rate  float64 `json:"rate"`
	Score int     `json:"score"`
}

// MaturityResult is the organization-wide governance maturity index. Overall
// is the pillar sum rescaled to 0-100. Indicators are human-readable
// disconnect findings used for remediation guidance, not scoring.
type MaturityResult struct {
	Pillars    []MaturityPillar `json:"pillars"`
	Overall    int              `json:"overall"`
	Indicators []string         `json:"indicators"`
	ComputedAt time.Time        `json:"computed_at"`
}
