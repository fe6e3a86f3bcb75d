package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cotbench/internal/eval"
	"cotbench/internal/provider"
)

// Results is the persisted artifact of one run.
type Results struct {
	Metadata Metadata `json:"metadata"`
	Records  []Record `json:"records"`
}

// Metadata describes the configuration a run used.
type Metadata struct {
	RunID          string        `json:"run_id"`
	Model          string        `json:"model"`
	Temperature    float64       `json:"temperature"`
	CoTSuffix      string        `json:"cot_suffix"`
	ZeroShotSuffix string        `json:"zero_shot_suffix"`
	QuestionCount  int           `json:"question_count"`
	Timestamp      time.Time     `json:"timestamp"`
	Mode           provider.Kind `json:"mode"`
	ReplayFile     string        `json:"replay_file,omitempty"`
}

// Record is the outcome for one question, in source order.
type Record struct {
	Question        string       `json:"question"`
	Rationale       string       `json:"rationale"`
	GroundTruth     string       `json:"ground_truth"`
	ZeroShotPrompt  string       `json:"zero_shot_prompt"`
	CoTPrompt       string       `json:"cot_prompt"`
	ZeroShotAnswer  string       `json:"zero_shot_answer"`
	CoTAnswer       string       `json:"cot_answer"`
	ZeroShotCorrect eval.Verdict `json:"zero_shot_correct"`
	CoTCorrect      eval.Verdict `json:"cot_correct"`
}

// ReadResults loads a previously written results.json.
func ReadResults(path string) (Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Results{}, fmt.Errorf("read results: %w", err)
	}
	var results Results
	if err := json.Unmarshal(data, &results); err != nil {
		return Results{}, fmt.Errorf("parse results: %w", err)
	}
	if results.Metadata.RunID == "" {
		return Results{}, fmt.Errorf("parse results: metadata.run_id is missing")
	}
	return results, nil
}
