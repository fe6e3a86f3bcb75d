package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"cotbench/internal/prompt"
)

// ReplayAnswers holds the recorded answers for one question.
type ReplayAnswers struct {
	ZeroShot string
	CoT      string
}

// ReplayIndex maps literal question text to recorded answers.
type ReplayIndex map[string]ReplayAnswers

type replayRecord struct {
	Question       *string `json:"question"`
	ZeroShotAnswer *string `json:"zero_shot_answer"`
	CoTAnswer      *string `json:"cot_answer"`
}

// LoadReplayIndex reads a fixture with a top-level records array. A previous
// results.json is a valid fixture.
func LoadReplayIndex(path string) (ReplayIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay file: %w", err)
	}
	var payload struct {
		Records []replayRecord `json:"records"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse replay file: %w", err)
	}
	index := make(ReplayIndex, len(payload.Records))
	for i, record := range payload.Records {
		switch {
		case record.Question == nil:
			return nil, fmt.Errorf("replay records[%d]: question is required", i)
		case record.ZeroShotAnswer == nil:
			return nil, fmt.Errorf("replay records[%d]: zero_shot_answer is required", i)
		case record.CoTAnswer == nil:
			return nil, fmt.Errorf("replay records[%d]: cot_answer is required", i)
		}
		index[*record.Question] = ReplayAnswers{ZeroShot: *record.ZeroShotAnswer, CoT: *record.CoTAnswer}
	}
	return index, nil
}

// ReplayMissError reports a question absent from the replay fixture.
type ReplayMissError struct {
	Question string
}

// Error names the missing question.
func (e *ReplayMissError) Error() string {
	return fmt.Sprintf("replay data is missing question %q", e.Question)
}

// Replay answers from pre-recorded fixture data.
type Replay struct {
	Index ReplayIndex
}

// Kind reports KindReplay.
func (r *Replay) Kind() Kind { return KindReplay }

// Answer looks up the question's literal prompt text. There is no fallback.
func (r *Replay) Answer(_ context.Context, req Request) (string, error) {
	answers, ok := r.Index[req.Question.Prompt]
	if !ok {
		return "", &ReplayMissError{Question: req.Question.Prompt}
	}
	if req.Mode == prompt.ModeCoT {
		return answers.CoT, nil
	}
	return answers.ZeroShot, nil
}
