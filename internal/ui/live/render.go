package live

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	line := "Run " + state.RunID
	if state.Provider != "" {
		line += " | " + string(state.Provider)
	}
	if state.Model != "" && state.Provider == "live" {
		line += " / " + state.Model
	}
	if !state.StartedAt.IsZero() {
		line += " | Elapsed: " + now.Sub(state.StartedAt).Round(100*time.Millisecond).String()
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Queued: " + fmtInt(counts.Queued) +
		" Running: " + fmtInt(counts.Running) +
		" Retrying: " + fmtInt(counts.Retrying) +
		" Done: " + fmtInt(counts.Done) +
		" Failed: " + fmtInt(counts.Failed) +
		" | Zero-Shot correct: " + fmtInt(counts.ZeroShotCorrect) + "/" + fmtInt(counts.Scored) +
		" CoT correct: " + fmtInt(counts.CoTCorrect) + "/" + fmtInt(counts.Scored)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders warnings followed by the last event line.
func renderFooter(state State, noColor bool) string {
	lines := make([]string, 0, len(state.Warnings)+1)
	for _, warning := range state.Warnings {
		lines = append(lines, stylize("Warning: "+warning, noColor, lipgloss.Color("214")))
	}
	switch {
	case state.RunError != "":
		lines = append(lines, stylize("Run failed: "+state.RunError, noColor, lipgloss.Color("196")))
	case state.LastEvent != "":
		lines = append(lines, stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244")))
	}
	return strings.Join(lines, "\n")
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
