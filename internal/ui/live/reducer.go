package live

import (
	"fmt"
	"time"

	"cotbench/internal/eval"
	"cotbench/internal/prompt"
	"cotbench/internal/runner"
)

// Reduce applies a question event to the UI state.
func Reduce(state State, event runner.QuestionEvent) State {
	state = ensureRow(state, event)
	state = applyQuestionEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, event runner.QuestionEvent) State {
	if event.QuestionIndex < 0 {
		return state
	}
	if event.QuestionIndex < len(state.Rows) {
		return state
	}
	rows := make([]QuestionRow, event.QuestionIndex+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = QuestionRow{Index: i}
	}
	state.Rows = rows
	return state
}

// applyQuestionEvent updates a row with the given event.
func applyQuestionEvent(state State, event runner.QuestionEvent) State {
	if event.QuestionIndex < 0 || event.QuestionIndex >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.QuestionIndex]
	if row.Text == "" {
		row.Text = event.QuestionText
	}
	switch event.Type {
	case runner.QuestionRunning:
		modeStatus(&row, event.Mode).State = runner.QuestionRunning
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
	case runner.QuestionRetrying:
		modeStatus(&row, event.Mode).State = runner.QuestionRetrying
		row.RetryCount++
		row.LastWait = event.Wait
	case runner.QuestionAnswered:
		status := modeStatus(&row, event.Mode)
		status.State = runner.QuestionAnswered
		status.Verdict = event.Verdict
		if event.Mode == prompt.ModeCoT {
			row.FinishedAt = event.EmittedAt
		}
	case runner.QuestionFailed:
		for _, status := range []*ModeStatus{&row.ZeroShot, &row.CoT} {
			if status.State == runner.QuestionRunning || status.State == runner.QuestionRetrying {
				status.State = runner.QuestionFailed
			}
		}
		row.Error = event.Error
		row.FinishedAt = event.EmittedAt
	}
	state.Rows[event.QuestionIndex] = row
	return state
}

// modeStatus returns the status slot for mode.
func modeStatus(row *QuestionRow, mode prompt.Mode) *ModeStatus {
	if mode == prompt.ModeCoT {
		return &row.CoT
	}
	return &row.ZeroShot
}

// rowStatus derives the overall status of a question.
func rowStatus(row QuestionRow) runner.QuestionEventType {
	switch {
	case row.Error != "":
		return runner.QuestionFailed
	case row.CoT.State == runner.QuestionAnswered:
		return runner.QuestionAnswered
	case row.ZeroShot.State == runner.QuestionRetrying || row.CoT.State == runner.QuestionRetrying:
		return runner.QuestionRetrying
	case row.ZeroShot.State != "" || row.CoT.State != "":
		return runner.QuestionRunning
	default:
		return runner.QuestionQueued
	}
}

// recount recomputes status counts for the current rows.
func recount(rows []QuestionRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch rowStatus(row) {
		case runner.QuestionQueued:
			counts.Queued++
		case runner.QuestionRunning:
			counts.Running++
		case runner.QuestionRetrying:
			counts.Retrying++
		case runner.QuestionAnswered:
			counts.Done++
		case runner.QuestionFailed:
			counts.Failed++
		}
		if row.ZeroShot.Verdict.Known() {
			counts.Scored++
		}
		if row.ZeroShot.Verdict == eval.VerdictCorrect {
			counts.ZeroShotCorrect++
		}
		if row.CoT.Verdict == eval.VerdictCorrect {
			counts.CoTCorrect++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.QuestionEvent) string {
	n := event.QuestionIndex + 1
	switch event.Type {
	case runner.QuestionRetrying:
		return fmt.Sprintf("Q%d %s attempt %d failed (retry in %s, %d left): %s",
			n, event.Mode.Label(), event.Attempt, formatDuration(event.Wait), event.Remaining, event.Error)
	case runner.QuestionPausing:
		return fmt.Sprintf("Q%d pausing %s", n, formatDuration(event.Wait))
	case runner.QuestionAnswered:
		return fmt.Sprintf("Q%d %s answered (%s)", n, event.Mode.Label(), verdictLabel(event.Verdict))
	case runner.QuestionFailed:
		return fmt.Sprintf("Q%d failed: %s", n, event.Error)
	}
	return ""
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}
