package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cotbench/internal/runner"
)

const defaultRefresh = 200 * time.Millisecond

// Options configures the live UI model.
type Options struct {
	NoColor bool
	// Refresh is how often elapsed times are redrawn.
	Refresh time.Duration
	// OnInterrupt is called once when the user presses ctrl+c. The terminal
	// is in raw mode while the table is shown, so no SIGINT reaches the
	// process.
	OnInterrupt func()
}

// Model is the Bubble Tea model behind the live progress table.
type Model struct {
	state       State
	table       table.Model
	events      <-chan Event
	refresh     time.Duration
	now         time.Time
	noColor     bool
	onInterrupt func()
	interrupted bool
}

// NewModel builds a model that reads run events from events.
func NewModel(events <-chan Event, opts Options) Model {
	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	t := table.New(
		table.WithColumns(defaultColumns()),
		table.WithFocused(false),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{
		table:       t,
		events:      events,
		refresh:     refresh,
		now:         time.Now(),
		noColor:     opts.NoColor,
		onInterrupt: opts.OnInterrupt,
	}
}

// Init subscribes to run events and starts the refresh timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(nextEvent(m.events), refreshAfter(m.refresh))
}

// Update handles run events, refresh ticks, resizes and ctrl+c.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-3, 1))
		m.table.SetColumns(columnsForWidth(msg.Width))
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.interrupt(), nil
		}
		return m, nil
	case eventMsg:
		return m.apply(Event(msg)), nextEvent(m.events)
	case refreshMsg:
		m.now = time.Time(msg)
		m.table.SetRows(rowsForState(m.state, m.now, m.noColor))
		return m, refreshAfter(m.refresh)
	}
	return m, nil
}

// View stacks the header, counters, question table and footer.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.state, m.now, m.noColor),
		renderSummary(m.state, m.noColor),
		m.table.View(),
		renderFooter(m.state, m.noColor),
	)
}

// apply folds one run event into the model.
func (m Model) apply(event Event) Model {
	switch event.Kind {
	case EventRunStart:
		m.state.RunID = event.RunID
		m.state.Provider = event.Provider
		m.state.Model = event.Model
		if m.state.StartedAt.IsZero() {
			m.state.StartedAt = time.Now()
		}
		if event.QuestionCount > 0 {
			m.state = ensureRow(m.state, runner.QuestionEvent{QuestionIndex: event.QuestionCount - 1})
		}
	case EventQuestion:
		m.state = Reduce(m.state, event.Question)
	case EventRunEnd:
		m.state.Finished = true
		m.state.RunError = event.Err
	case EventWarning:
		m.state.Warnings = append(m.state.Warnings, event.Message)
	}
	m.table.SetRows(rowsForState(m.state, m.now, m.noColor))
	return m
}

func (m Model) interrupt() Model {
	if m.interrupted {
		return m
	}
	m.interrupted = true
	m.state.LastEvent = "interrupt requested, stopping after the current call"
	if m.onInterrupt != nil {
		m.onInterrupt()
	}
	return m
}

type eventMsg Event

type refreshMsg time.Time

// nextEvent waits for the next run event. A closed channel ends the program.
func nextEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return eventMsg(event)
	}
}

func refreshAfter(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return refreshMsg(t) })
}
