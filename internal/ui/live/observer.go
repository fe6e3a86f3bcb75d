package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"cotbench/internal/provider"
	"cotbench/internal/question"
	"cotbench/internal/runner"
)

const eventBuffer = 256

// Controller owns the Bubble Tea program and implements runner.RunObserver.
// Events are dropped rather than blocking the run when the UI falls behind.
type Controller struct {
	mu     sync.Mutex
	events chan Event
	closed bool
	done   chan struct{}
	err    error
}

// Start shows the live table on stdout until Close is called or the run ends.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	c := &Controller{
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}
	program := tea.NewProgram(NewModel(c.events, opts), tea.WithOutput(stdout), tea.WithAltScreen())
	go func() {
		defer close(c.done)
		_, c.err = program.Run()
	}()
	return c
}

// OnRunStart sizes the table for the question set.
func (c *Controller) OnRunStart(runID string, kind provider.Kind, model string, questions []question.Question) {
	c.send(Event{Kind: EventRunStart, RunID: runID, Provider: kind, Model: model, QuestionCount: len(questions)})
}

// OnQuestionEvent forwards a status change.
func (c *Controller) OnQuestionEvent(event runner.QuestionEvent) {
	c.send(Event{Kind: EventQuestion, Question: event})
}

// OnWarning keeps message visible under the table.
func (c *Controller) OnWarning(message string) {
	c.send(Event{Kind: EventWarning, Message: message})
}

// OnRunEnd shows the outcome and stops the UI.
func (c *Controller) OnRunEnd(_ runner.Results, err error) {
	event := Event{Kind: EventRunEnd}
	if err != nil {
		event.Err = err.Error()
	}
	c.send(event)
	c.Close()
}

// Close stops the UI once pending events are drained. It is safe to call
// more than once.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.events)
	}
}

// Wait blocks until the UI has exited and returns the program error, if any.
func (c *Controller) Wait() error {
	if c == nil {
		return nil
	}
	<-c.done
	return c.err
}

func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}
