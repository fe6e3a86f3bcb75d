package provider

import (
	"context"

	"cotbench/internal/retry"
)

// Completer sends one prompt to a text-generation service.
type Completer interface {
	Complete(ctx context.Context, model, content string, temperature float64) (string, error)
}

// Live answers by calling the service through a retrying executor.
type Live struct {
	Client      Completer
	Model       string
	Temperature float64
	Retry       retry.Executor
}

// Kind reports KindLive.
func (l *Live) Kind() Kind { return KindLive }

// Answer sends the built prompt once per request, retrying transient failures.
func (l *Live) Answer(ctx context.Context, req Request) (string, error) {
	return l.Retry.Do(ctx, func(ctx context.Context) (string, error) {
		return l.Client.Complete(ctx, l.Model, req.Prompt, l.Temperature)
	})
}
