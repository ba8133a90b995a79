package types

import "fmt"

// RiskCategory is the coarse classification assigned to a regulatory clause
type RiskCategory string

const (
	RiskCategoryCybersecurity   RiskCategory = "CYBERSECURITY"
	RiskCategoryFinancial       RiskCategory = "FINANCIAL"
	RiskCategoryLiability       RiskCategory = "LIABILITY"
	RiskCategoryIndemnification RiskCategory = "INDEMNIFICATION"
	RiskCategoryRegulatory      RiskCategory = "REGULATORY"
	RiskCategoryPerformance     RiskCategory = "PERFORMANCE"
	RiskCategoryGeneral         RiskCategory = "GENERAL"
)

// AllRiskCategories returns all valid risk categories
func AllRiskCategories() []RiskCategory {
	return []RiskCategory{
		RiskCategoryCybersecurity,
		RiskCategoryFinancial,
		RiskCategoryLiability,
		RiskCategoryIndemnification,
		RiskCategoryRegulatory,
		RiskCategoryPerformance,
		RiskCategoryGeneral,
	}
}

// IsValid checks if the risk category is valid
func (c RiskCategory) IsValid() bool {
	switch c {
	case RiskCategoryCybersecurity,
		RiskCategoryFinancial,
		RiskCategoryLiability,
		RiskCategoryIndemnification,
		RiskCategoryRegulatory,
		RiskCategoryPerformance,
		RiskCategoryGeneral:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk category
func (c RiskCategory) String() string {
	return string(c)
}

// ParseRiskCategory parses a string into a RiskCategory
func ParseRiskCategory(s string) (RiskCategory, error) {
	category := RiskCategory(s)
	if !category.IsValid() {
		return "", fmt.Errorf("invalid risk category: %s", s)
	}
	return category, nil
}
