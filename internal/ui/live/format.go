package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"cotbench/internal/eval"
	"cotbench/internal/runner"
)

// formatIndex formats a question index.
func formatIndex(index int) string {
	return "Q" + pad2(index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatQuestionText collapses whitespace and truncates by rune.
func formatQuestionText(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	const limit = 60
	runes := []rune(normalized)
	if len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

// formatModeStatus renders one mode's progress, including its verdict once answered.
func formatModeStatus(status ModeStatus, noColor bool) string {
	text := modeLabel(status)
	if noColor {
		return text
	}
	return modeStyle(status).Render(text)
}

func modeLabel(status ModeStatus) string {
	switch status.State {
	case "":
		return "queued"
	case runner.QuestionAnswered:
		return verdictLabel(status.Verdict)
	default:
		return string(status.State)
	}
}

func verdictLabel(verdict eval.Verdict) string {
	switch verdict {
	case eval.VerdictCorrect:
		return "correct"
	case eval.VerdictIncorrect:
		return "incorrect"
	default:
		return "unscored"
	}
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row QuestionRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return row.FinishedAt.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	if !row.StartedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}

// formatRetries formats retry counts for display.
func formatRetries(retries int) string {
	if retries <= 0 {
		return ""
	}
	return fmtInt(retries)
}

// modeStyle selects a color for a mode status.
func modeStyle(status ModeStatus) lipgloss.Style {
	color := lipgloss.Color("246")
	switch status.State {
	case runner.QuestionAnswered:
		switch status.Verdict {
		case eval.VerdictCorrect:
			color = lipgloss.Color("42")
		case eval.VerdictIncorrect:
			color = lipgloss.Color("220")
		default:
			color = lipgloss.Color("244")
		}
	case runner.QuestionFailed:
		color = lipgloss.Color("196")
	case runner.QuestionRetrying:
		color = lipgloss.Color("39")
	case runner.QuestionRunning:
		color = lipgloss.Color("33")
	}
	return lipgloss.NewStyle().Foreground(color)
}
