package prompt

import "strings"

// Mode identifies a prompting strategy.
type Mode string

const (
	// ModeZeroShot asks for the answer directly.
	ModeZeroShot Mode = "zero_shot"
	// ModeCoT asks the model to reason step by step first.
	ModeCoT Mode = "cot"
)

// Modes lists the strategies in the order they are requested for each question.
var Modes = []Mode{ModeZeroShot, ModeCoT}

// Label returns a display name for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeZeroShot:
		return "Zero-Shot"
	case ModeCoT:
		return "CoT"
	default:
		return string(m)
	}
}

// Build appends suffix to the trimmed question unless it already ends with it.
// Build(Build(q, s), s) == Build(q, s).
func Build(question, suffix string) string {
	question = strings.TrimSpace(question)
	suffix = strings.TrimSpace(suffix)
	if suffix == "" || strings.HasSuffix(question, suffix) {
		return question
	}
	return strings.TrimSpace(question + " " + suffix)
}
