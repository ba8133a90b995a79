package escalation

import (
	"github.com/govcon-lab/bidgate/pkg/domain/model/config"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// ScoredEntry is the evaluator's view of one attached clause: the effective
// category plus the level of its current assessment. Entries without a
// current assessment carry Assessed=false and only trigger presence-based
// rules such as the cyber watch list.
type ScoredEntry struct {
	ClauseNumber string
	Category     types.RiskCategory
	Level        types.RiskLevel
	Assessed     bool
}

// Meta is the solicitation metadata the rules consult
type Meta struct {
	ContractType types.ContractType
}

// Flags is the set of required-review signals. Each flag is raised by one or
// more independent rules OR-combined; re-evaluating the same inputs yields
// the same flags.
type Flags struct {
	QualityRequired         bool
	ExecutiveRequired       bool
	CyberReviewRequired     bool
	FinancialReviewRequired bool
	EscalationRequired      bool
}

// Evaluate derives the escalation flags for a solicitation. Pure function;
// it never fails on well-formed input.
func Evaluate(entries []ScoredEntry, meta Meta, cfg *config.ScoringConfig) Flags {
	if cfg == nil {
		cfg = config.DefaultScoringConfig()
	}

	watch := make(map[string]struct{}, len(cfg.CyberWatchList))
	for _, number := range cfg.CyberWatchList {
		watch[number] = struct{}{}
	}

	var flags Flags
	highCount := 0

	for _, entry := range entries {
		if _, ok := watch[entry.ClauseNumber]; ok {
			flags.CyberReviewRequired = true
		}
		if !entry.Assessed {
			continue
		}

		if entry.Level.AtLeast(types.RiskLevelL3) {
			highCount++
			flags.QualityRequired = true
			if meta.ContractType.IsCostReimbursable() {
				flags.FinancialReviewRequired = true
			}
			if entry.Category == types.RiskCategoryIndemnification {
				flags.EscalationRequired = true
			}
		}
		if entry.Level == types.RiskLevelL4 {
			flags.ExecutiveRequired = true
			flags.EscalationRequired = true
		}
	}

	if highCount >= cfg.EscalationCount {
		flags.EscalationRequired = true
	}

	return flags
}
