package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"cotbench/internal/config"
	"cotbench/internal/provider"
	"cotbench/internal/question"
	"cotbench/internal/retry"
)

// Run answers every question in both modes and returns the results. Nothing
// is written to disk; any error aborts the run and no partial results are
// returned.
func Run(ctx context.Context, cfg config.Config, params RunParams) (Results, error) {
	questions, err := question.Load(cfg.QuestionsFile)
	if err != nil {
		return Results{}, err
	}
	runID, err := resolveRunID(cfg.Tag, params.Deps.RunID)
	if err != nil {
		return Results{}, err
	}

	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	sleep := params.Deps.Sleep
	if sleep == nil {
		sleep = retry.SleepContext
	}
	getenv := params.Deps.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	providerFactory := params.Deps.ProviderFactory
	if providerFactory == nil {
		providerFactory = provider.Select
	}
	diagnostics := params.DiagnosticsWriter
	if diagnostics == nil {
		diagnostics = os.Stderr
	}

	run := &questionRun{
		cfg:      cfg,
		now:      now,
		sleep:    sleep,
		observer: params.Observer,
		verbose:  newVerboseLogger(params.Verbose, params.VerboseWriter, params.NoColor),
		diag:     newDiagnosticsLogger(diagnostics, params.NoColor),
	}
	selection, err := providerFactory(provider.SelectParams{
		ReplayFile:     cfg.ReplayFile,
		DryRun:         cfg.DryRun,
		APIKey:         cfg.APIKey(getenv),
		BaseURL:        cfg.BaseURL,
		Model:          cfg.Model,
		Temperature:    cfg.Temperature,
		RequestTimeout: cfg.RequestTimeoutDuration(),
		HTTPClient:     params.Deps.HTTPClient,
		Retry: retry.Executor{
			MaxRetries: cfg.MaxRetries,
			RetryWait:  cfg.RetryWaitDuration(),
			Sleep:      sleep,
			OnRetry:    run.onRetry,
		},
	})
	if err != nil {
		if errors.Is(err, provider.ErrMissingCredential) {
			return Results{}, fmt.Errorf("%s: %w", cfg.APIKeyEnv, err)
		}
		return Results{}, err
	}
	if selection.Warning != "" {
		run.diag.log(styleWarning, "%s", selection.Warning)
		if run.observer != nil {
			run.observer.OnWarning(selection.Warning)
		}
	}
	run.provider = selection.Provider
	kind := selection.Provider.Kind()

	run.verbose.log(styleRun, "run %s: %d question(s), provider=%s, model=%s", runID, len(questions), kind, cfg.Model)
	if run.observer != nil {
		run.observer.OnRunStart(runID, kind, cfg.Model, questions)
		for i, q := range questions {
			run.emit(QuestionEvent{QuestionIndex: i, QuestionText: q.Prompt, Type: QuestionQueued})
		}
	}

	records := make([]Record, 0, len(questions))
	for i, q := range questions {
		record, err := run.answerQuestion(ctx, i, q)
		if err == nil {
			err = run.pace(ctx, i, q)
		}
		if err != nil {
			run.emit(QuestionEvent{QuestionIndex: i, QuestionText: q.Prompt, Type: QuestionFailed, Error: err.Error()})
			run.verbose.log(styleError, "Q%d failed: %v", i+1, err)
			if run.observer != nil {
				run.observer.OnRunEnd(Results{}, err)
			}
			return Results{}, err
		}
		records = append(records, record)
	}

	results := Results{
		Metadata: Metadata{
			RunID:          runID,
			Model:          cfg.Model,
			Temperature:    cfg.Temperature,
			CoTSuffix:      cfg.CoTSuffix,
			ZeroShotSuffix: cfg.ZeroShotSuffix,
			QuestionCount:  len(questions),
			Timestamp:      now(),
			Mode:           kind,
			ReplayFile:     cfg.ReplayFile,
		},
		Records: records,
	}
	run.verbose.log(styleMetrics, "run %s finished: %s", runID, formatAccuracy(records))
	if run.observer != nil {
		run.observer.OnRunEnd(results, nil)
	}
	return results, nil
}

// RunAndWrite executes a run and persists its artifacts exactly once.
func RunAndWrite(ctx context.Context, cfg config.Config, params RunParams, artifacts ...Artifact) (Results, OutputPaths, error) {
	results, err := Run(ctx, cfg, params)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	paths, err := WriteRunOutputs(results, cfg.OutputDir, artifacts...)
	if err != nil {
		return results, OutputPaths{}, err
	}
	return results, paths, nil
}

func resolveRunID(tag string, generate func() (string, error)) (string, error) {
	if tag = strings.TrimSpace(tag); tag != "" {
		return tag, nil
	}
	if generate == nil {
		generate = NewRunID
	}
	runID, err := generate()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return runID, nil
}
