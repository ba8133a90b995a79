package types

import "fmt"

// DetectionMethod records how a clause entry was attached to a solicitation
type DetectionMethod string

const (
	DetectionMethodExtracted DetectionMethod = "EXTRACTED"
	DetectionMethodManual    DetectionMethod = "MANUAL"
)

// AllDetectionMethods returns all valid detection methods
func AllDetectionMethods() []DetectionMethod {
	return []DetectionMethod{
		DetectionMethodExtracted,
		DetectionMethodManual,
	}
}

// IsValid checks if the detection method is valid
func (d DetectionMethod) IsValid() bool {
	switch d {
	case DetectionMethodExtracted, DetectionMethodManual:
		return true
	default:
		return false
	}
}

// String returns the string representation of the detection method
func (d DetectionMethod) String() string {
	return string(d)
}

// ParseDetectionMethod parses a string into a DetectionMethod
func ParseDetectionMethod(s string) (DetectionMethod, error) {
	method := DetectionMethod(s)
	if !method.IsValid() {
		return "", fmt.Errorf("invalid detection method: %s", s)
	}
	return method, nil
}
