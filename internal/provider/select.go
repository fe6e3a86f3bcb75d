package provider

import (
	"errors"
	"strings"
	"time"

	"cotbench/internal/retry"
)

// ErrMissingCredential reports that live mode has no API key.
var ErrMissingCredential = errors.New("api key is not set; export it or add it to .env")

// ReplayOverridesDryRunWarning is returned by Select when both modes are requested.
const ReplayOverridesDryRunWarning = "both replay_file and dry_run are set; using replay answers"

// SelectParams carries everything needed to pick and build a provider.
type SelectParams struct {
	ReplayFile     string
	DryRun         bool
	APIKey         string
	BaseURL        string
	Model          string
	Temperature    float64
	RequestTimeout time.Duration
	Retry          retry.Executor
	HTTPClient     HTTPDoer
}

// Selection is the provider chosen for a run.
type Selection struct {
	Provider Provider
	Warning  string
}

// Select applies the fixed precedence: replay fixture, then dry run, then live.
// Only the live variant needs a credential.
func Select(params SelectParams) (Selection, error) {
	if strings.TrimSpace(params.ReplayFile) != "" {
		index, err := LoadReplayIndex(params.ReplayFile)
		if err != nil {
			return Selection{}, err
		}
		selection := Selection{Provider: &Replay{Index: index}}
		if params.DryRun {
			selection.Warning = ReplayOverridesDryRunWarning
		}
		return selection, nil
	}
	if params.DryRun {
		return Selection{Provider: Simulated{}}, nil
	}
	client, err := NewChatClient(params.APIKey, params.BaseURL, params.RequestTimeout, params.HTTPClient)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Provider: &Live{
		Client:      client,
		Model:       params.Model,
		Temperature: params.Temperature,
		Retry:       params.Retry,
	}}, nil
}
