package types

import "fmt"

// FlowDown is the three-valued flow-down requirement of a clause. It is
// deliberately not a boolean: CONDITIONAL drives different downstream
// behavior than either REQUIRED or NOT_REQUIRED.
type FlowDown string

const (
	FlowDownRequired    FlowDown = "REQUIRED"
	FlowDownNotRequired FlowDown = "NOT_REQUIRED"
	FlowDownConditional FlowDown = "CONDITIONAL"
)

// AllFlowDowns returns all valid flow-down values
func AllFlowDowns() []FlowDown {
	return []FlowDown{
		FlowDownRequired,
		FlowDownNotRequired,
		FlowDownConditional,
	}
}

// IsValid checks if the flow-down value is valid
func (f FlowDown) IsValid() bool {
	switch f {
	case FlowDownRequired, FlowDownNotRequired, FlowDownConditional:
		return true
	default:
		return false
	}
}

// String returns the string representation of the flow-down value
func (f FlowDown) String() string {
	return string(f)
}

// ParseFlowDown parses a string into a FlowDown
func ParseFlowDown(s string) (FlowDown, error) {
	fd := FlowDown(s)
	if !fd.IsValid() {
		return "", fmt.Errorf("invalid flow-down value: %s", s)
	}
	return fd, nil
}
