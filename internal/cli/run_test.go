package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cotbench/internal/config"
	"cotbench/internal/provider"
	"cotbench/internal/question"
	"cotbench/internal/report"
	"cotbench/internal/runner"
)

func writeTestFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// TestRunCommandLayersConfigAndFlags verifies flags override the YAML file
// only when they are set.
func TestRunCommandLayersConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestFile(t, dir, "bench.yml", "model: file-model\ntemperature: 0.5\nmax_retries: 7\noutput_dir: "+filepath.Join(dir, "from-file")+"\n")

	var gotConfig config.Config
	var gotParams runner.RunParams
	var gotArtifacts []runner.Artifact
	origRun := runAndWrite
	runAndWrite = func(_ context.Context, cfg config.Config, params runner.RunParams, artifacts ...runner.Artifact) (runner.Results, runner.OutputPaths, error) {
		gotConfig = cfg
		gotParams = params
		gotArtifacts = artifacts
		return runner.Results{Metadata: runner.Metadata{RunID: "run-1"}}, runner.OutputPaths{Root: cfg.OutputDir, RunID: "run-1"}, nil
	}
	t.Cleanup(func() { runAndWrite = origRun })

	var stdout, stderr bytes.Buffer
	code := Run([]string{"run",
		"--config", cfgPath,
		"--env-file", "",
		"--model", "flag-model",
		"--max-retries", "0",
		"--dry-run",
		"--save-markdown",
		"--ui", "plain",
	}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, stderr.String())
	}
	if gotConfig.Model != "flag-model" || gotConfig.MaxRetries != 0 {
		t.Fatalf("flags not applied: %+v", gotConfig)
	}
	if gotConfig.Temperature != 0.5 || gotConfig.OutputDir != filepath.Join(dir, "from-file") {
		t.Fatalf("file values lost: %+v", gotConfig)
	}
	if gotConfig.CoTSuffix != config.DefaultCoTSuffix || gotConfig.Pause != config.DefaultPause {
		t.Fatalf("defaults lost: %+v", gotConfig)
	}
	if !gotConfig.DryRun || !gotConfig.SaveMarkdown {
		t.Fatalf("bool flags not applied: %+v", gotConfig)
	}
	if gotParams.Observer != nil {
		t.Fatalf("plain mode should not attach a live observer")
	}
	if gotParams.DiagnosticsWriter != &stderr {
		t.Fatalf("plain mode diagnostics should go to stderr")
	}
	if len(gotArtifacts) != 2 || gotArtifacts[0].Name != report.MarkdownFileName || gotArtifacts[1].Name != report.HTMLFileName {
		t.Fatalf("unexpected artifacts: %+v", gotArtifacts)
	}
	if !strings.Contains(stdout.String(), "Run run-1 completed") {
		t.Fatalf("missing completion line: %q", stdout.String())
	}
}

// TestRunCommandDryRunWritesResults runs the real pipeline with simulated
// answers.
func TestRunCommandDryRunWritesResults(t *testing.T) {
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"run",
		"--config", filepath.Join(dir, "none.yml"),
		"--env-file", "",
		"--dry-run",
		"--tag", "t1",
		"--output-dir", outputDir,
		"--save-markdown",
		"--ui", "plain",
	}, &stdout, &stderr)
	if code != ExitError {
		t.Fatalf("explicit missing config should fail, got %d", code)
	}

	stdout.Reset()
	stderr.Reset()
	code = Run([]string{"run",
		"--env-file", "",
		"--dry-run",
		"--tag", "t1",
		"--output-dir", outputDir,
		"--save-markdown",
		"--ui", "plain",
	}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, stderr.String())
	}

	results, err := runner.ReadResults(filepath.Join(outputDir, "t1", config.ResultsFileName))
	if err != nil {
		t.Fatalf("read results: %v", err)
	}
	if results.Metadata.RunID != "t1" || results.Metadata.Mode != provider.KindSimulated {
		t.Fatalf("unexpected metadata: %+v", results.Metadata)
	}
	if len(results.Records) != len(question.Defaults()) {
		t.Fatalf("expected %d records, got %d", len(question.Defaults()), len(results.Records))
	}
	for _, name := range []string{report.MarkdownFileName, report.HTMLFileName} {
		if _, err := os.Stat(filepath.Join(outputDir, "t1", name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
	out := stdout.String()
	if !strings.Contains(out, "Run t1 completed (simulated") {
		t.Fatalf("missing completion line: %q", out)
	}
	if !strings.Contains(out, "Zero-Shot accuracy") || !strings.Contains(out, "Results: ") {
		t.Fatalf("missing summary: %q", out)
	}
}

// TestRunCommandFailsWithoutCredential verifies live mode needs an API key and
// writes nothing.
func TestRunCommandFailsWithoutCredential(t *testing.T) {
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "out")
	cfgPath := writeTestFile(t, dir, "bench.yml", "api_key_env: COTBENCH_TEST_MISSING_KEY\n")
	t.Setenv("COTBENCH_TEST_MISSING_KEY", "")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"run", "--config", cfgPath, "--env-file", "", "--tag", "t2", "--output-dir", outputDir, "--ui", "plain"}, &stdout, &stderr)
	if code != ExitError {
		t.Fatalf("expected exit error, got %d", code)
	}
	if !strings.Contains(stderr.String(), "COTBENCH_TEST_MISSING_KEY") {
		t.Fatalf("expected credential name in error, got %q", stderr.String())
	}
	if _, err := os.Stat(filepath.Join(outputDir, "t2")); !os.IsNotExist(err) {
		t.Fatalf("expected no run directory, got %v", err)
	}
}

// TestRunCommandReadsEnvFile verifies the API key is picked up from --env-file.
func TestRunCommandReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeTestFile(t, dir, "test.env", "COTBENCH_TEST_ENV_KEY=secret\n")
	cfgPath := writeTestFile(t, dir, "bench.yml", "api_key_env: COTBENCH_TEST_ENV_KEY\n")
	t.Setenv("COTBENCH_TEST_ENV_KEY", "")
	os.Unsetenv("COTBENCH_TEST_ENV_KEY")

	var gotKey string
	origRun := runAndWrite
	runAndWrite = func(_ context.Context, cfg config.Config, _ runner.RunParams, _ ...runner.Artifact) (runner.Results, runner.OutputPaths, error) {
		gotKey = cfg.APIKey(os.Getenv)
		return runner.Results{}, runner.OutputPaths{}, errors.New("stop")
	}
	t.Cleanup(func() { runAndWrite = origRun })

	var stdout, stderr bytes.Buffer
	code := Run([]string{"run", "--config", cfgPath, "--env-file", envPath, "--ui", "plain"}, &stdout, &stderr)
	if code != ExitError {
		t.Fatalf("expected exit error from stub, got %d", code)
	}
	if gotKey != "secret" {
		t.Fatalf("expected key from env file, got %q", gotKey)
	}
	if !strings.Contains(stderr.String(), "Run failed: stop") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

// TestRunCommandRejectsBadInput covers usage and validation failures.
func TestRunCommandRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want int
	}{
		{name: "unknown flag", args: []string{"--nope"}, want: ExitUsage},
		{name: "positional", args: []string{"extra"}, want: ExitUsage},
		{name: "bad ui", args: []string{"--ui", "fancy"}, want: ExitUsage},
		{name: "bad temperature", args: []string{"--env-file", "", "--temperature", "3"}, want: ExitError},
		{name: "missing env file", args: []string{"--env-file", "does-not-exist.env"}, want: ExitError},
		{name: "missing questions", args: []string{"--env-file", "", "--questions-file", "does-not-exist.json"}, want: ExitError},
	}
	origRun := runAndWrite
	runAndWrite = func(context.Context, config.Config, runner.RunParams, ...runner.Artifact) (runner.Results, runner.OutputPaths, error) {
		t.Fatalf("run should not start")
		return runner.Results{}, runner.OutputPaths{}, nil
	}
	t.Cleanup(func() { runAndWrite = origRun })

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := Run(append([]string{"run"}, tc.args...), &stdout, &stderr); code != tc.want {
				t.Fatalf("expected exit %d, got %d: %s", tc.want, code, stderr.String())
			}
		})
	}
}

type fakeLiveUI struct {
	closed      bool
	waited      bool
	onInterrupt func()
	warnings    []string
}

func (f *fakeLiveUI) OnRunStart(string, provider.Kind, string, []question.Question) {}
func (f *fakeLiveUI) OnQuestionEvent(runner.QuestionEvent) {}
func (f *fakeLiveUI) OnWarning(message string) { f.warnings = append(f.warnings, message) }
func (f *fakeLiveUI) OnRunEnd(runner.Results, error) {}
func (f *fakeLiveUI) Close() { f.closed = true }
func (f *fakeLiveUI) Wait() error {
	f.waited = true
	return nil
}

// TestRunCommandLiveModeRoutesDiagnostics verifies the live UI is attached and
// diagnostics move to the log file.
func TestRunCommandLiveModeRoutesDiagnostics(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "run.log")

	origTerminal := isTerminal
	isTerminal = func(io.Writer) bool { return true }
	ui := &fakeLiveUI{}
	origStart := startLiveUI
	startLiveUI = func(_ io.Writer, _ bool, onInterrupt func()) liveUI {
		ui.onInterrupt = onInterrupt
		return ui
	}
	var gotParams runner.RunParams
	origRun := runAndWrite
	runAndWrite = func(_ context.Context, _ config.Config, params runner.RunParams, _ ...runner.Artifact) (runner.Results, runner.OutputPaths, error) {
		gotParams = params
		return runner.Results{Metadata: runner.Metadata{RunID: "live-1"}}, runner.OutputPaths{Root: dir, RunID: "live-1"}, nil
	}
	t.Cleanup(func() {
		isTerminal = origTerminal
		startLiveUI = origStart
		runAndWrite = origRun
	})

	var stdout, stderr bytes.Buffer
	code := Run([]string{"run", "--env-file", "", "--dry-run", "--log", logPath}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, stderr.String())
	}
	if gotParams.Observer != liveUI(ui) {
		t.Fatalf("expected live observer")
	}
	if !ui.closed || !ui.waited {
		t.Fatalf("expected live UI to be closed and awaited")
	}
	if ui.onInterrupt == nil {
		t.Fatalf("expected an interrupt hook for the live UI")
	}
	if gotParams.DiagnosticsWriter == &stderr || gotParams.DiagnosticsWriter == nil {
		t.Fatalf("live mode diagnostics should go to the log file")
	}
	if !gotParams.Verbose {
		t.Fatalf("--log should enable verbose logging to the file")
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestDiagnosticsWriter(t *testing.T) {
	var stderr, logFile, held bytes.Buffer
	if got := diagnosticsWriter(false, &stderr, nil, &held); got != &stderr {
		t.Fatalf("plain without log should use stderr")
	}
	if got := diagnosticsWriter(true, &stderr, nil, &held); got != &held {
		t.Fatalf("live without log should hold diagnostics")
	}
	_, _ = io.WriteString(diagnosticsWriter(true, &stderr, &logFile, &held), "w")
	if held.String() != "w" || logFile.String() != "w" || stderr.Len() != 0 {
		t.Fatalf("live with log should hold and log, got %q %q %q", held.String(), logFile.String(), stderr.String())
	}
	logFile.Reset()
	writer := diagnosticsWriter(false, &stderr, &logFile, &held)
	_, _ = io.WriteString(writer, "x")
	if stderr.String() != "x" || logFile.String() != "x" {
		t.Fatalf("plain with log should tee, got %q %q", stderr.String(), logFile.String())
	}
}

// TestRunCommandLiveModeShowsReplayWarning runs replay plus --dry-run on a
// terminal without a log file and checks the warning reaches both the live
// table and stderr.
func TestRunCommandLiveModeShowsReplayWarning(t *testing.T) {
	dir := t.TempDir()
	questionsPath := writeTestFile(t, dir, "questions.json", `[{"prompt":"Q1","ground_truth":"b"}]`)
	replayPath := writeTestFile(t, dir, "replay.json", `{"records":[{"question":"Q1","zero_shot_answer":"a","cot_answer":"so the answer is b"}]}`)

	origTerminal := isTerminal
	isTerminal = func(io.Writer) bool { return true }
	ui := &fakeLiveUI{}
	origStart := startLiveUI
	startLiveUI = func(io.Writer, bool, func()) liveUI { return ui }
	t.Cleanup(func() {
		isTerminal = origTerminal
		startLiveUI = origStart
	})

	var stdout, stderr bytes.Buffer
	code := Run([]string{"run",
		"--env-file", "",
		"--dry-run",
		"--replay-file", replayPath,
		"--questions-file", questionsPath,
		"--output-dir", filepath.Join(dir, "out"),
		"--tag", "warn-1",
		"--no-color",
	}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, stderr.String())
	}
	if len(ui.warnings) != 1 || ui.warnings[0] != provider.ReplayOverridesDryRunWarning {
		t.Fatalf("expected the live UI to receive the warning, got %v", ui.warnings)
	}
	if !strings.Contains(stderr.String(), provider.ReplayOverridesDryRunWarning) {
		t.Fatalf("expected warning on stderr after the live UI exits, got %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), "Run warn-1 completed (replay") {
		t.Fatalf("missing completion line: %q", stdout.String())
	}
}
