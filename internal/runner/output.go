package runner

import (
	"fmt"
	"path/filepath"
	"strings"

	"cotbench/internal/config"
)

// OutputPaths describes filesystem locations for run outputs.
type OutputPaths struct {
	Root  string
	RunID string
}

// NewOutputPaths validates and constructs output paths metadata.
func NewOutputPaths(root, runID string) (OutputPaths, error) {
	if strings.TrimSpace(root) == "" {
		return OutputPaths{}, fmt.Errorf("output root is empty")
	}
	if strings.TrimSpace(runID) == "" {
		return OutputPaths{}, fmt.Errorf("run ID is empty")
	}
	return OutputPaths{Root: root, RunID: runID}, nil
}

// RunDir returns the directory for a specific run.
func (o OutputPaths) RunDir() string {
	return config.RunDir(o.Root, o.RunID)
}

// ResultsPath returns the path to results.json.
func (o OutputPaths) ResultsPath() string {
	return config.ResultsPath(o.Root, o.RunID)
}

// ArtifactPath returns the path of a named secondary artifact.
func (o OutputPaths) ArtifactPath(name string) string {
	return filepath.Join(o.RunDir(), name)
}
