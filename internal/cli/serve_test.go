package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cotbench/internal/reportserver"
)

// TestServeCommandRequiresRunRef verifies serve fails when no run is named.
func TestServeCommandRequiresRunRef(t *testing.T) {
	cmd := findCommand("serve")
	if cmd == nil {
		t.Fatalf("serve command not found")
	}
	var stdout, stderr bytes.Buffer
	exitCode := cmd.Run([]string{}, &stdout, &stderr)
	if exitCode != ExitUsage {
		t.Fatalf("expected usage exit, got %d", exitCode)
	}
}

// TestServeCommandPassesConfig ensures serve forwards the resolved run to the server layer.
func TestServeCommandPassesConfig(t *testing.T) {
	outputDir := t.TempDir()
	paths := writePersistedRun(t, outputDir, "t1", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))

	var gotConfig reportserver.Config
	origServe := serveReport
	serveReport = func(_ context.Context, cfg reportserver.Config) error {
		gotConfig = cfg
		return nil
	}
	t.Cleanup(func() { serveReport = origServe })

	cmd := findCommand("serve")
	if cmd == nil {
		t.Fatalf("serve command not found")
	}
	var stdout, stderr bytes.Buffer
	exitCode := cmd.Run([]string{
		"--addr", "127.0.0.1:5050",
		"--output-dir", outputDir,
		"t1",
	}, &stdout, &stderr)
	if exitCode != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", exitCode, stderr.String())
	}
	if gotConfig.Addr != "127.0.0.1:5050" {
		t.Fatalf("unexpected addr: %s", gotConfig.Addr)
	}
	if gotConfig.ResultsPath != paths.ResultsPath() {
		t.Fatalf("unexpected results path: %s", gotConfig.ResultsPath)
	}
	if !strings.Contains(stdout.String(), "Serving run t1 at http://127.0.0.1:5050") {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

// TestServeCommandAcceptsResultsFile verifies a results file path is served as given.
func TestServeCommandAcceptsResultsFile(t *testing.T) {
	paths := writePersistedRun(t, t.TempDir(), "t2", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))

	var gotConfig reportserver.Config
	origServe := serveReport
	serveReport = func(_ context.Context, cfg reportserver.Config) error {
		gotConfig = cfg
		return nil
	}
	t.Cleanup(func() { serveReport = origServe })

	var stdout, stderr bytes.Buffer
	if code := Run([]string{"serve", paths.ResultsPath()}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, stderr.String())
	}
	if gotConfig.ResultsPath != paths.ResultsPath() {
		t.Fatalf("unexpected results path: %s", gotConfig.ResultsPath)
	}
}

func TestServeCommandMissingRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"serve", "--output-dir", filepath.Join(t.TempDir(), "none"), "latest"}, &stdout, &stderr)
	if code != ExitError {
		t.Fatalf("expected error exit, got %d", code)
	}
	if !strings.Contains(stderr.String(), "no runs found") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}
