//go:build cucumber

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"cotbench/internal/config"
	"cotbench/internal/runner"
)

// TestRunScenarios runs the run command feature scenarios.
func TestRunScenarios(t *testing.T) {
	featurePath := filepath.Join("testdata", "features", "run.feature")
	suite := godog.TestSuite{
		Name:                "run",
		ScenarioInitializer: InitializeRunScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeRunScenario wires steps for run scenarios.
func InitializeRunScenario(ctx *godog.ScenarioContext) {
	state := &runScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, err
	})

	ctx.Step(`^a questions file with question "([^"]+)" and ground truth "([^"]*)"$`, state.givenQuestionsFile)
	ctx.Step(`^a replay file answering "([^"]+)" with "([^"]*)" and "([^"]*)"$`, state.givenReplayFile)
	ctx.Step(`^I run cotbench with "([^"]*)"$`, state.whenIRun)
	ctx.Step(`^the exit code is (\d+)$`, state.thenExitCode)
	ctx.Step(`^stderr contains "([^"]+)"$`, state.thenStderrContains)
	ctx.Step(`^run "([^"]+)" has (\d+) records?$`, state.thenRecordCount)
	ctx.Step(`^record (\d+) of run "([^"]+)" has zero-shot verdict "([^"]+)" and cot verdict "([^"]+)"$`, state.thenVerdicts)
	ctx.Step(`^run "([^"]+)" was not written$`, state.thenNotWritten)
}

type runScenarioState struct {
	dir           string
	questionsPath string
	replayPath    string
	exitCode      int
	stdout        bytes.Buffer
	stderr        bytes.Buffer
}

func (s *runScenarioState) reset() error {
	dir, err := os.MkdirTemp("", "cotbench-run-*")
	if err != nil {
		return err
	}
	*s = runScenarioState{dir: dir}
	return nil
}

func (s *runScenarioState) cleanup() {
	if s.dir != "" {
		_ = os.RemoveAll(s.dir)
	}
}

func (s *runScenarioState) outputDir() string {
	return filepath.Join(s.dir, "out")
}

func (s *runScenarioState) givenQuestionsFile(prompt, truth string) error {
	data, err := json.Marshal([]map[string]string{{"prompt": prompt, "ground_truth": truth}})
	if err != nil {
		return err
	}
	s.questionsPath = filepath.Join(s.dir, "questions.json")
	return os.WriteFile(s.questionsPath, data, 0o644)
}

func (s *runScenarioState) givenReplayFile(question, zeroShot, cot string) error {
	data, err := json.Marshal(map[string]any{
		"records": []map[string]string{{"question": question, "zero_shot_answer": zeroShot, "cot_answer": cot}},
	})
	if err != nil {
		return err
	}
	s.replayPath = filepath.Join(s.dir, "replay.json")
	return os.WriteFile(s.replayPath, data, 0o644)
}

func (s *runScenarioState) whenIRun(flags string) error {
	args := []string{"run",
		"--config", filepath.Join(s.dir, config.DefaultConfigFile),
		"--env-file", "",
		"--ui", "plain",
		"--output-dir", s.outputDir(),
	}
	if s.questionsPath != "" {
		args = append(args, "--questions-file", s.questionsPath)
	}
	if s.replayPath != "" {
		args = append(args, "--replay-file", s.replayPath)
	}
	args = append(args, strings.Fields(flags)...)
	if err := os.WriteFile(filepath.Join(s.dir, config.DefaultConfigFile), []byte("pause: 0\n"), 0o644); err != nil {
		return err
	}
	s.exitCode = Run(args, &s.stdout, &s.stderr)
	return nil
}

func (s *runScenarioState) thenExitCode(code int) error {
	if s.exitCode != code {
		return fmt.Errorf("expected exit %d, got %d (stderr %q)", code, s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *runScenarioState) thenStderrContains(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("expected stderr to contain %q, got %q", text, s.stderr.String())
	}
	return nil
}

func (s *runScenarioState) readRun(runID string) (runner.Results, error) {
	return runner.ReadResults(config.ResultsPath(s.outputDir(), runID))
}

func (s *runScenarioState) thenRecordCount(runID string, count int) error {
	results, err := s.readRun(runID)
	if err != nil {
		return err
	}
	if len(results.Records) != count {
		return fmt.Errorf("expected %d records, got %d", count, len(results.Records))
	}
	return nil
}

func (s *runScenarioState) thenVerdicts(index int, runID, zeroShot, cot string) error {
	results, err := s.readRun(runID)
	if err != nil {
		return err
	}
	if index < 1 || index > len(results.Records) {
		return fmt.Errorf("record %d out of range", index)
	}
	record := results.Records[index-1]
	if got := record.ZeroShotCorrect.String(); got != zeroShot {
		return fmt.Errorf("expected zero-shot verdict %s, got %s", zeroShot, got)
	}
	if got := record.CoTCorrect.String(); got != cot {
		return fmt.Errorf("expected cot verdict %s, got %s", cot, got)
	}
	return nil
}

func (s *runScenarioState) thenNotWritten(runID string) error {
	if _, err := os.Stat(config.RunDir(s.outputDir(), runID)); !os.IsNotExist(err) {
		return fmt.Errorf("expected no run directory for %s, got %v", runID, err)
	}
	return nil
}
