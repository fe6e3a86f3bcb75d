package config

import (
	"fmt"
	"strings"
)

// Issue is one invalid config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates every config issue found in one pass.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range err.Issues {
		fmt.Fprintf(&b, "\n  %s: %s", issue.Field, issue.Message)
	}
	return b.String()
}

type issueAdder func(field, message string)

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
