package types

import "fmt"

// RiskLevel is the discrete severity bucket derived from a normalized risk score
type RiskLevel string

const (
	RiskLevelL1 RiskLevel = "L1"
	RiskLevelL2 RiskLevel = "L2"
	RiskLevelL3 RiskLevel = "L3"
	RiskLevelL4 RiskLevel = "L4"
)

// AllRiskLevels returns all valid risk levels, lowest first
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLevelL1,
		RiskLevelL2,
		RiskLevelL3,
		RiskLevelL4,
	}
}

// IsValid checks if the risk level is valid
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelL1, RiskLevelL2, RiskLevelL3, RiskLevelL4:
		return true
	default:
		return false
	}
}

// Rank returns the ordinal of the level (1 for L1 .. 4 for L4), 0 if invalid
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLevelL1:
		return 1
	case RiskLevelL2:
		return 2
	case RiskLevelL3:
		return 3
	case RiskLevelL4:
		return 4
	default:
		return 0
	}
}

// AtLeast reports whether the level is equal to or more severe than other
func (l RiskLevel) AtLeast(other RiskLevel) bool {
	return l.Rank() >= other.Rank()
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}

// ParseRiskLevel parses a string into a RiskLevel
func ParseRiskLevel(s string) (RiskLevel, error) {
	level := RiskLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid risk level: %s", s)
	}
	return level, nil
}
