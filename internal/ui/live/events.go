package live

import (
	"cotbench/internal/provider"
	"cotbench/internal/runner"
)

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventQuestion delivers a question status update.
	EventQuestion
	// EventRunEnd signals run completion.
	EventRunEnd
	// EventWarning carries a non-fatal message for the footer.
	EventWarning
)

// Event carries a UI update payload.
type Event struct {
	Kind          EventKind
	RunID         string
	Provider      provider.Kind
	Model         string
	QuestionCount int
	Question      runner.QuestionEvent
	Err           string
	Message       string
}
