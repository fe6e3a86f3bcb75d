package provider

import (
	"context"

	"cotbench/internal/prompt"
	"cotbench/internal/question"
)

// Kind names the provider variant selected for a run.
type Kind string

const (
	KindLive      Kind = "live"
	KindReplay    Kind = "replay"
	KindSimulated Kind = "simulated"
)

// Request is one (question, mode) answer request.
type Request struct {
	Question question.Question
	Mode     prompt.Mode
	// Prompt is the fully built prompt text sent to live providers.
	Prompt string
}

// Provider produces an answer for a single request.
type Provider interface {
	Kind() Kind
	Answer(ctx context.Context, req Request) (string, error)
}
