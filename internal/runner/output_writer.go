package runner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact is a secondary file rendered from the results, such as a Markdown
// table. Artifacts are written after results.json.
type Artifact struct {
	Name   string
	Render func(Results) ([]byte, error)
}

// WriteRunOutputs creates <outputDir>/<run_id> and writes results.json plus any
// artifacts. Each file is replaced atomically; an existing run with the same
// id is overwritten.
func WriteRunOutputs(results Results, outputDir string, artifacts ...Artifact) (OutputPaths, error) {
	if outputDir == "" {
		return OutputPaths{}, fmt.Errorf("output directory is required")
	}
	paths, err := NewOutputPaths(outputDir, results.Metadata.RunID)
	if err != nil {
		return OutputPaths{}, err
	}
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return OutputPaths{}, fmt.Errorf("create output dir: %w", err)
	}
	payload, err := MarshalResults(results)
	if err != nil {
		return OutputPaths{}, err
	}
	if err := writeFileAtomic(paths.ResultsPath(), payload); err != nil {
		return OutputPaths{}, err
	}
	if err := WriteArtifacts(results, paths.RunDir(), artifacts...); err != nil {
		return OutputPaths{}, err
	}
	return paths, nil
}

// WriteArtifacts renders each artifact into dir, replacing existing files.
func WriteArtifacts(results Results, dir string, artifacts ...Artifact) error {
	for _, artifact := range artifacts {
		if artifact.Render == nil || artifact.Name == "" {
			continue
		}
		data, err := artifact.Render(results)
		if err != nil {
			return fmt.Errorf("render %s: %w", artifact.Name, err)
		}
		if err := writeFileAtomic(filepath.Join(dir, artifact.Name), data); err != nil {
			return err
		}
	}
	return nil
}

// MarshalResults renders results as indented JSON with non-ASCII and HTML
// characters left unescaped.
func MarshalResults(results Results) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
