//go:build cucumber

package reportserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"cotbench/internal/eval"
	"cotbench/internal/runner"
)

// TestServeReportScenarios runs the report server feature scenarios.
func TestServeReportScenarios(t *testing.T) {
	featurePath := filepath.Join("testdata", "features", "report-serve.feature")
	suite := godog.TestSuite{
		Name:                "report-serve",
		ScenarioInitializer: InitializeServeScenario,
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

// InitializeServeScenario wires steps for report server feature scenarios.
func InitializeServeScenario(ctx *godog.ScenarioContext) {
	state := &serveScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, err
	})

	ctx.Step(`^a persisted run "([^"]+)" with question "([^"]+)" answered "([^"]*)" and "([^"]*)"$`, state.givenPersistedRun)
	ctx.Step(`^I start the report server$`, state.whenIStartTheReportServer)
	ctx.Step(`^I request "([^"]+)"$`, state.whenIRequest)
	ctx.Step(`^the response status is (\d+)$`, state.thenResponseStatus)
	ctx.Step(`^the response body contains "([^"]+)"$`, state.thenResponseBodyContains)
	ctx.Step(`^the response body equals the results file bytes$`, state.thenResponseBodyEqualsResults)
}

type serveScenarioState struct {
	outputDir   string
	resultsPath string
	handler     http.Handler
	response    *httptest.ResponseRecorder
}

func (s *serveScenarioState) reset() {
	*s = serveScenarioState{}
}

func (s *serveScenarioState) cleanup() {
	if s.outputDir != "" {
		_ = os.RemoveAll(s.outputDir)
	}
}

func (s *serveScenarioState) givenPersistedRun(runID, question, zeroAnswer, cotAnswer string) error {
	dir, err := os.MkdirTemp("", "cotbench-serve-*")
	if err != nil {
		return err
	}
	s.outputDir = dir
	results := runner.Results{
		Metadata: runner.Metadata{RunID: runID, QuestionCount: 1},
		Records: []runner.Record{{
			Question:        question,
			ZeroShotAnswer:  zeroAnswer,
			CoTAnswer:       cotAnswer,
			ZeroShotCorrect: eval.VerdictUnknown,
			CoTCorrect:      eval.VerdictUnknown,
		}},
	}
	paths, err := runner.WriteRunOutputs(results, dir)
	if err != nil {
		return err
	}
	s.resultsPath = paths.ResultsPath()
	return nil
}

func (s *serveScenarioState) whenIStartTheReportServer() error {
	if s.resultsPath == "" {
		return fmt.Errorf("results path is not set")
	}
	handler, err := NewHandler(Config{ResultsPath: s.resultsPath})
	if err != nil {
		return err
	}
	s.handler = handler
	return nil
}

func (s *serveScenarioState) whenIRequest(path string) error {
	if s.handler == nil {
		return fmt.Errorf("handler not initialized")
	}
	req := httptest.NewRequest(http.MethodGet, "http://example.com"+path, nil)
	recorder := httptest.NewRecorder()
	s.handler.ServeHTTP(recorder, req)
	s.response = recorder
	return nil
}

func (s *serveScenarioState) thenResponseStatus(expected int) error {
	if s.response == nil {
		return fmt.Errorf("response not recorded")
	}
	if s.response.Code != expected {
		return fmt.Errorf("expected status %d, got %d", expected, s.response.Code)
	}
	return nil
}

func (s *serveScenarioState) thenResponseBodyContains(snippet string) error {
	if s.response == nil {
		return fmt.Errorf("response not recorded")
	}
	if !strings.Contains(s.response.Body.String(), snippet) {
		return fmt.Errorf("expected response to contain %q", snippet)
	}
	return nil
}

func (s *serveScenarioState) thenResponseBodyEqualsResults() error {
	if s.response == nil {
		return fmt.Errorf("response not recorded")
	}
	want, err := os.ReadFile(s.resultsPath)
	if err != nil {
		return err
	}
	if got := s.response.Body.Bytes(); string(got) != string(want) {
		return fmt.Errorf("response body did not match results.json")
	}
	return nil
}
