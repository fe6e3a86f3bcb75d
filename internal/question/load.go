package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load returns the questions for a run: the built-in set when path is empty,
// otherwise the validated contents of the questions file.
func Load(path string) ([]Question, error) {
	if strings.TrimSpace(path) == "" {
		return Defaults(), nil
	}
	return LoadFile(path)
}

// LoadFile reads, parses, and validates a questions file.
func LoadFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}
	questions, err := parseQuestions(data, path)
	if err != nil {
		return nil, err
	}
	return Validate(questions)
}

func parseQuestions(data []byte, path string) ([]Question, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return parseYAMLQuestions(data)
	default:
		return parseJSONQuestions(data)
	}
}

func parseJSONQuestions(data []byte) ([]Question, error) {
	var questions []Question
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&questions); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return questions, nil
}

func parseYAMLQuestions(data []byte) ([]Question, error) {
	var questions []Question
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&questions); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return questions, nil
}
