package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cotbench/internal/config"
	"cotbench/internal/runner"
)

// LatestRef selects the most recent run under the output directory.
const LatestRef = "latest"

// ResolveRun locates a persisted run. ref may be a results.json path, a run
// directory, a run id under outputDir, or LatestRef. It returns the results and
// the run directory.
func ResolveRun(outputDir, ref string) (runner.Results, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return runner.Results{}, "", fmt.Errorf("run ref is required")
	}
	if ref == LatestRef {
		runDir, err := findLatestRunDir(outputDir)
		if err != nil {
			return runner.Results{}, "", err
		}
		return loadRunDir(runDir)
	}
	if info, err := os.Stat(ref); err == nil {
		if info.IsDir() {
			return loadRunDir(ref)
		}
		results, err := runner.ReadResults(ref)
		return results, filepath.Dir(ref), err
	}
	runDir := config.RunDir(outputDir, ref)
	if info, err := os.Stat(runDir); err != nil || !info.IsDir() {
		return runner.Results{}, "", fmt.Errorf("run %s not found in %s", ref, outputDir)
	}
	return loadRunDir(runDir)
}

func loadRunDir(runDir string) (runner.Results, string, error) {
	results, err := runner.ReadResults(filepath.Join(runDir, config.ResultsFileName))
	return results, runDir, err
}

// findLatestRunDir picks the last run directory in lexical order. Generated
// run ids start with a UTC timestamp, so this is the newest generated run.
func findLatestRunDir(outputDir string) (string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("no runs found in %s", outputDir)
		}
		return "", err
	}
	runIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(outputDir, entry.Name(), config.ResultsFileName)); err == nil {
			runIDs = append(runIDs, entry.Name())
		}
	}
	if len(runIDs) == 0 {
		return "", fmt.Errorf("no runs found in %s", outputDir)
	}
	sort.Strings(runIDs)
	return filepath.Join(outputDir, runIDs[len(runIDs)-1]), nil
}
