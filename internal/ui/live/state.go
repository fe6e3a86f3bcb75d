package live

import (
	"time"

	"cotbench/internal/eval"
	"cotbench/internal/provider"
	"cotbench/internal/runner"
)

// ModeStatus is the progress of one prompting mode for a question. An empty
// State means the call has not started.
type ModeStatus struct {
	State   runner.QuestionEventType
	Verdict eval.Verdict
}

// QuestionRow holds UI state for a single question.
type QuestionRow struct {
	Index      int
	Text       string
	ZeroShot   ModeStatus
	CoT        ModeStatus
	RetryCount int
	LastWait   time.Duration
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued          int
	Running         int
	Retrying        int
	Done            int
	Failed          int
	Scored          int
	ZeroShotCorrect int
	CoTCorrect      int
}

// State captures the live UI state for a run.
type State struct {
	RunID     string
	Provider  provider.Kind
	Model     string
	StartedAt time.Time
	LastEvent string
	Warnings  []string
	Rows      []QuestionRow
	Counts    StatusCounts
	Finished  bool
	RunError  string
}
