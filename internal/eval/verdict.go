package eval

import (
	"bytes"
	"fmt"
)

// Verdict is a tri-state correctness result.
type Verdict int8

const (
	// VerdictUnknown means the question has no usable ground truth.
	VerdictUnknown Verdict = iota
	// VerdictCorrect means the ground truth was found in the answer.
	VerdictCorrect
	// VerdictIncorrect means the ground truth was not found in the answer.
	VerdictIncorrect
)

// Known reports whether the verdict was scored.
func (v Verdict) Known() bool {
	return v == VerdictCorrect || v == VerdictIncorrect
}

// String renders the verdict for tables and logs.
func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "true"
	case VerdictIncorrect:
		return "false"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the verdict as true, false, or null.
func (v Verdict) MarshalJSON() ([]byte, error) {
	switch v {
	case VerdictCorrect:
		return []byte("true"), nil
	case VerdictIncorrect:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes true, false, or null.
func (v *Verdict) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		*v = VerdictCorrect
	case "false":
		*v = VerdictIncorrect
	case "null":
		*v = VerdictUnknown
	default:
		return fmt.Errorf("invalid verdict %s", data)
	}
	return nil
}
