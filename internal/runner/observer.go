package runner

import (
	"time"

	"cotbench/internal/eval"
	"cotbench/internal/prompt"
	"cotbench/internal/provider"
	"cotbench/internal/question"
)

// QuestionEventType identifies a question status update for observers.
type QuestionEventType string

const (
	// QuestionQueued marks a question known but not yet started.
	QuestionQueued QuestionEventType = "queued"
	// QuestionRunning marks a provider call in progress for one mode.
	QuestionRunning QuestionEventType = "running"
	// QuestionRetrying marks a failed attempt waiting for backoff.
	QuestionRetrying QuestionEventType = "retrying"
	// QuestionAnswered marks a scored answer for one mode.
	QuestionAnswered QuestionEventType = "answered"
	// QuestionPausing marks the pacing delay between live calls.
	QuestionPausing QuestionEventType = "pausing"
	// QuestionFailed marks an error that aborts the run.
	QuestionFailed QuestionEventType = "failed"
)

// QuestionEvent carries a single status update for a question.
type QuestionEvent struct {
	QuestionIndex int
	QuestionText  string
	Type          QuestionEventType
	Mode          prompt.Mode
	Verdict       eval.Verdict
	Attempt       int
	Remaining     int
	Wait          time.Duration
	Error         string
	EmittedAt     time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run after the provider is selected.
	OnRunStart(runID string, kind provider.Kind, model string, questions []question.Question)
	// OnQuestionEvent delivers a question status update.
	OnQuestionEvent(event QuestionEvent)
	// OnWarning reports a non-fatal condition the user should see, such as a
	// replay file overriding --dry-run.
	OnWarning(message string)
	// OnRunEnd signals run completion. err is nil when every question was answered.
	OnRunEnd(results Results, err error)
}
