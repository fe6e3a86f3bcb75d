package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// TestValidateCommandSuccess verifies validate command success path.
func TestValidateCommandSuccess(t *testing.T) {
	dir := t.TempDir()
	questionsPath := writeTestFile(t, dir, "questions.json", `[{"prompt": "2+3=?", "ground_truth": "5"}]`)
	replayPath := writeTestFile(t, dir, "replay.json", `{"records": [{"question": "2+3=?", "zero_shot_answer": "5", "cot_answer": "5"}]}`)
	cfgPath := writeTestFile(t, dir, "bench.yml", "questions_file: "+questionsPath+"\n")

	var out, errOut bytes.Buffer
	code := Run([]string{"validate", "--config", cfgPath, "--replay-file", replayPath}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut.String())
	}
	if !strings.Contains(out.String(), "Config OK") {
		t.Fatalf("expected success output, got %q", out.String())
	}
}

// TestValidateCommandReportsEveryFixtureIssue verifies question and replay
// problems are listed together.
func TestValidateCommandReportsEveryFixtureIssue(t *testing.T) {
	dir := t.TempDir()
	questionsPath := writeTestFile(t, dir, "questions.json", `[{"prompt": "2+3=?"}, {"prompt": "1+1=?"}, {"prompt": "4+4=?"}]`)
	replayPath := writeTestFile(t, dir, "replay.json", `{"records": [{"question": "1+1=?", "zero_shot_answer": "2", "cot_answer": "2"}]}`)

	var out, errOut bytes.Buffer
	code := Run([]string{"validate", "--questions-file", questionsPath, "--replay-file", replayPath}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	output := errOut.String()
	for _, want := range []string{"questions[0]", "2+3=?", "questions[2]", "4+4=?"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in %q", want, output)
		}
	}
	if strings.Contains(output, "questions[1]") {
		t.Fatalf("question 1 is covered by the replay fixture: %q", output)
	}
}

// TestValidateCommandInvalidQuestions verifies malformed question files fail.
func TestValidateCommandInvalidQuestions(t *testing.T) {
	dir := t.TempDir()
	questionsPath := writeTestFile(t, dir, "questions.json", `[{"prompt": ""}, {"prompt": "  "}]`)

	var out, errOut bytes.Buffer
	code := Run([]string{"validate", "--questions-file", questionsPath}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut.String(), "questions[0].prompt") || !strings.Contains(errOut.String(), "questions[1].prompt") {
		t.Fatalf("expected both prompt issues, got %q", errOut.String())
	}
}

// TestValidateCommandConfigErrors verifies config issues are printed.
func TestValidateCommandConfigErrors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestFile(t, dir, "bench.yml", "model: \"\"\ntemperature: 5\n")

	var out, errOut bytes.Buffer
	code := Run([]string{"validate", "--config", cfgPath}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	for _, want := range []string{"Validation failed", "model", "temperature"} {
		if !strings.Contains(errOut.String(), want) {
			t.Fatalf("expected %q in %q", want, errOut.String())
		}
	}
}

func TestValidateCommandRejectsArguments(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := Run([]string{"validate", "extra"}, &out, &errOut); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	errOut.Reset()
	if code := Run([]string{"validate", "--config", filepath.Join(t.TempDir(), "none.yml")}, &out, &errOut); code != ExitError {
		t.Fatalf("explicit missing config should fail, got %d", code)
	}
}
