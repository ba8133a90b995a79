package types

import "fmt"

// ContractType represents the anticipated contract vehicle of a solicitation
type ContractType string

const (
	ContractTypeFirmFixedPrice   ContractType = "FIRM_FIXED_PRICE"
	ContractTypeCostReimbursable ContractType = "COST_REIMBURSABLE"
	ContractTypeTimeAndMaterials ContractType = "TIME_AND_MATERIALS"
	ContractTypeIDIQ             ContractType = "IDIQ"
)

// AllContractTypes returns all valid contract types
func AllContractTypes() []ContractType {
	return []ContractType{
		ContractTypeFirmFixedPrice,
		ContractTypeCostReimbursable,
		ContractTypeTimeAndMaterials,
		ContractTypeIDIQ,
	}
}

// IsValid checks if the contract type is valid
func (c ContractType) IsValid() bool {
	switch c {
	case ContractTypeFirmFixedPrice,
		ContractTypeCostReimbursable,
		ContractTypeTimeAndMaterials,
		ContractTypeIDIQ:
		return true
	default:
		return false
	}
}

// IsCostReimbursable reports whether the contract type shifts cost risk to
// the government, which triggers financial review for high-risk clauses.
func (c ContractType) IsCostReimbursable() bool {
	return c == ContractTypeCostReimbursable
}

// String returns the string representation of the contract type
func (c ContractType) String() string {
	return string(c)
}

// ParseContractType parses a string into a ContractType
func ParseContractType(s string) (ContractType, error) {
	ct := ContractType(s)
	if !ct.IsValid() {
		return "", fmt.Errorf("invalid contract type: %s", s)
	}
	return ct, nil
}
