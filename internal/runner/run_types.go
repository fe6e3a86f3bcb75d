package runner

import (
	"context"
	"io"
	"time"

	"cotbench/internal/provider"
)

// ProviderFactory selects the answer provider for a run.
type ProviderFactory func(params provider.SelectParams) (provider.Selection, error)

// RunDependencies allows injecting factories and clocks for a run.
type RunDependencies struct {
	ProviderFactory ProviderFactory
	RunID           func() (string, error)
	Now             func() time.Time
	Sleep           func(ctx context.Context, d time.Duration) error
	Getenv          func(string) string
	HTTPClient      provider.HTTPDoer
}

// RunParams configures a run invocation.
type RunParams struct {
	Verbose       bool
	VerboseWriter io.Writer
	// DiagnosticsWriter receives warnings and retry notices regardless of
	// Verbose. Nil means os.Stderr; pass io.Discard to silence them.
	DiagnosticsWriter io.Writer
	NoColor           bool
	Observer          RunObserver
	Deps              RunDependencies
}
