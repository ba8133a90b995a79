package types

import "fmt"

// RegulationFamily identifies the regulation body a clause belongs to
type RegulationFamily string

const (
	RegulationFamilyFAR   RegulationFamily = "FAR"
	RegulationFamilyDFARS RegulationFamily = "DFARS"
)

// AllRegulationFamilies returns all valid regulation families
func AllRegulationFamilies() []RegulationFamily {
	return []RegulationFamily{
		RegulationFamilyFAR,
		RegulationFamilyDFARS,
	}
}

// IsValid checks if the regulation family is valid
func (f RegulationFamily) IsValid() bool {
	switch f {
	case RegulationFamilyFAR,
		RegulationFamilyDFARS:
		return true
	default:
		return false
	}
}

// String returns the string representation of the regulation family
func (f RegulationFamily) String() string {
	return string(f)
}

// ParseRegulationFamily parses a string into a RegulationFamily
func ParseRegulationFamily(s string) (RegulationFamily, error) {
	family := RegulationFamily(s)
	if !family.IsValid() {
		return "", fmt.Errorf("invalid regulation family: %s", s)
	}
	return family, nil
}
