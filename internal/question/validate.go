package question

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a questions file.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("questions validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Validate checks that every question carries a prompt. The prompt text is kept
// verbatim because replay fixtures are keyed by it; only the emptiness check trims.
// An empty list is valid and yields a run with no records.
func Validate(questions []Question) ([]Question, error) {
	collector := &issueCollector{}
	for i, item := range questions {
		if strings.TrimSpace(item.Prompt) == "" {
			collector.add(fmt.Sprintf("questions[%d].prompt", i), "is required")
		}
	}
	if err := collector.result(); err != nil {
		return nil, err
	}
	out := make([]Question, len(questions))
	copy(out, questions)
	return out, nil
}
