package model

// BlockerCode identifies a specific approve-to-bid gating failure
type BlockerCode string

const (
	BlockerExtractionIncomplete     BlockerCode = "CLAUSE_EXTRACTION_INCOMPLETE"
	BlockerAssessmentsOutstanding   BlockerCode = "ASSESSMENTS_OUTSTANDING"
	BlockerQualityApprovalMissing   BlockerCode = "QUALITY_APPROVAL_MISSING"
	BlockerExecutiveApprovalMissing BlockerCode = "EXECUTIVE_APPROVAL_MISSING"
	BlockerRiskLogStale             BlockerCode = "RISK_LOG_STALE"
)

// Blocker is one unmet approve-to-bid precondition. The gate always returns
// the complete list so callers get the full remediation picture in one
// round trip.
type Blocker struct {
	Code    BlockerCode `json:"code"`
	Message string      `json:"message"`
	Count   int         `json:"count,omitempty"`
}
