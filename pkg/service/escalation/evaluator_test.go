package escalation_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/govcon-lab/bidgate/pkg/domain/model/config"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
	"github.com/govcon-lab/bidgate/pkg/service/escalation"
)

func TestEvaluate(t *testing.T) {
	t.Run("single L4 clause raises executive and escalation flags", func(t *testing.T) {
		flags := escalation.Evaluate([]escalation.ScoredEntry{
			{ClauseNumber: "52.228-7", Category: types.RiskCategoryLiability, Level: types.RiskLevelL4, Assessed: true},
		}, escalation.Meta{ContractType: types.ContractTypeFirmFixedPrice}, nil)

		gt.Bool(t, flags.ExecutiveRequired).True()
		gt.Bool(t, flags.QualityRequired).True()
		gt.Bool(t, flags.EscalationRequired).True()
		gt.Bool(t, flags.CyberReviewRequired).False()
		gt.Bool(t, flags.FinancialReviewRequired).False()
	})

	t.Run("L3 clause raises quality but not executive", func(t *testing.T) {
		flags := escalation.Evaluate([]escalation.ScoredEntry{
			{ClauseNumber: "52.246-2", Category: types.RiskCategoryPerformance, Level: types.RiskLevelL3, Assessed: true},
		}, escalation.Meta{ContractType: types.ContractTypeFirmFixedPrice}, nil)

		gt.Bool(t, flags.QualityRequired).True()
		gt.Bool(t, flags.ExecutiveRequired).False()
		gt.Bool(t, flags.EscalationRequired).False()
	})

	t.Run("three L3 clauses trip the count-based escalation rule", func(t *testing.T) {
		entries := []escalation.ScoredEntry{
			{ClauseNumber: "52.246-2", Category: types.RiskCategoryPerformance, Level: types.RiskLevelL3, Assessed: true},
			{ClauseNumber: "52.215-2", Category: types.RiskCategoryRegulatory, Level: types.RiskLevelL3, Assessed: true},
			{ClauseNumber: "52.232-20", Category: types.RiskCategoryFinancial, Level: types.RiskLevelL3, Assessed: true},
		}
		flags := escalation.Evaluate(entries, escalation.Meta{ContractType: types.ContractTypeFirmFixedPrice}, nil)

		gt.Bool(t, flags.EscalationRequired).True()
		gt.Bool(t, flags.ExecutiveRequired).False()
	})

	t.Run("two L3 clauses do not", func(t *testing.T) {
		entries := []escalation.ScoredEntry{
			{ClauseNumber: "52.246-2", Category: types.RiskCategoryPerformance, Level: types.RiskLevelL3, Assessed: true},
			{ClauseNumber: "52.215-2", Category: types.RiskCategoryRegulatory, Level: types.RiskLevelL3, Assessed: true},
		}
		flags := escalation.Evaluate(entries, escalation.Meta{ContractType: types.ContractTypeFirmFixedPrice}, nil)

		gt.Bool(t, flags.EscalationRequired).False()
	})

	t.Run("cyber watch clause forces cyber review even unassessed", func(t *testing.T) {
		flags := escalation.Evaluate([]escalation.ScoredEntry{
			{ClauseNumber: "252.204-7012", Category: types.RiskCategoryCybersecurity},
		}, escalation.Meta{ContractType: types.ContractTypeFirmFixedPrice}, nil)

		gt.Bool(t, flags.CyberReviewRequired).True()
		gt.Bool(t, flags.QualityRequired).False()
	})

	t.Run("cost-reimbursable contract with L3 clause forces financial review", func(t *testing.T) {
		flags := escalation.Evaluate([]escalation.ScoredEntry{
			{ClauseNumber: "52.216-7", Category: types.RiskCategoryFinancial, Level: types.RiskLevelL3, Assessed: true},
		}, escalation.Meta{ContractType: types.ContractTypeCostReimbursable}, nil)

		gt.Bool(t, flags.FinancialReviewRequired).True()
	})

	t.Run("same clause on fixed-price contract does not", func(t *testing.T) {
		flags := escalation.Evaluate([]escalation.ScoredEntry{
			{ClauseNumber: "52.216-7", Category: types.RiskCategoryFinancial, Level: types.RiskLevelL3, Assessed: true},
		}, escalation.Meta{ContractType: types.ContractTypeFirmFixedPrice}, nil)

		gt.Bool(t, flags.FinancialReviewRequired).False()
	})

	t.Run("indemnification clause at L3 escalates without the count rule", func(t *testing.T) {
		flags := escalation.Evaluate([]escalation.ScoredEntry{
			{ClauseNumber: "52.228-7", Category: types.RiskCategoryIndemnification, Level: types.RiskLevelL3, Assessed: true},
		}, escalation.Meta{ContractType: types.ContractTypeFirmFixedPrice}, nil)

		gt.Bool(t, flags.EscalationRequired).True()
	})

	t.Run("rules are OR-combined and idempotent", func(t *testing.T) {
		entries := []escalation.ScoredEntry{
			{ClauseNumber: "252.204-7012", Category: types.RiskCategoryCybersecurity, Level: types.RiskLevelL4, Assessed: true},
			{ClauseNumber: "52.228-7", Category: types.RiskCategoryIndemnification, Level: types.RiskLevelL3, Assessed: true},
		}
		meta := escalation.Meta{ContractType: types.ContractTypeCostReimbursable}

		first := escalation.Evaluate(entries, meta, nil)
		second := escalation.Evaluate(entries, meta, nil)
		gt.Value(t, first).Equal(second)

		gt.Bool(t, first.QualityRequired).True()
		gt.Bool(t, first.ExecutiveRequired).True()
		gt.Bool(t, first.CyberReviewRequired).True()
		gt.Bool(t, first.FinancialReviewRequired).True()
		gt.Bool(t, first.EscalationRequired).True()
	})

	t.Run("configured watch list replaces the default", func(t *testing.T) {
		cfg := config.DefaultScoringConfig()
		cfg.CyberWatchList = []string{"52.239-1"}

		flags := escalation.Evaluate([]escalation.ScoredEntry{
			{ClauseNumber: "252.204-7012", Category: types.RiskCategoryCybersecurity},
		}, escalation.Meta{}, cfg)
		gt.Bool(t, flags.CyberReviewRequired).False()

		flags = escalation.Evaluate([]escalation.ScoredEntry{
			{ClauseNumber: "52.239-1", Category: types.RiskCategoryCybersecurity},
		}, escalation.Meta{}, cfg)
		gt.Bool(t, flags.CyberReviewRequired).True()
	})
}
