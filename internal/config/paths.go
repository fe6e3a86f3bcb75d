package config

import "path/filepath"

// File names looked up in the working directory when no flag names them.
const (
	DefaultConfigFile = ".cotbench.yml"
	DefaultEnvFile    = ".env"
)

// ResultsFileName is the primary artifact inside a run directory.
const ResultsFileName = "results.json"

// RunDir returns the directory holding a run's artifacts.
func RunDir(outputDir, runID string) string {
	return filepath.Join(outputDir, runID)
}

// ResultsPath returns the results.json path for a run.
func ResultsPath(outputDir, runID string) string {
	return filepath.Join(RunDir(outputDir, runID), ResultsFileName)
}
