package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// defaultColumns returns the columns used before the terminal size is known.
func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth gives spare width to the question column.
func columnsForWidth(width int) []table.Column {
	const fixed = 4 + 14 + 14 + 8 + 7 + 10
	question := width - fixed
	if question < 20 {
		question = 20
	}
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Question", Width: question},
		{Title: "Zero-Shot", Width: 14},
		{Title: "CoT", Width: 14},
		{Title: "Time", Width: 8},
		{Title: "Retries", Width: 7},
	}
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatIndex(row.Index),
			formatQuestionText(row.Text),
			formatModeStatus(row.ZeroShot, noColor),
			formatModeStatus(row.CoT, noColor),
			formatRowDuration(row, now),
			formatRetries(row.RetryCount),
		})
	}
	return rows
}
