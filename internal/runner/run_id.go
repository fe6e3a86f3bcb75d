package runner

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// NewRunID returns a sortable id made of a UTC timestamp and a random UUID.
func NewRunID() (string, error) {
	return NewRunIDWithRand(time.Now().UTC(), rand.Reader)
}

// NewRunIDWithRand builds the id from a version 4 UUID drawn from r. The
// timestamp prefix keeps ids ordered; the UUID keeps them unique.
func NewRunIDWithRand(now time.Time, r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("random reader is nil")
	}
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return "", fmt.Errorf("generate run uuid: %w", err)
	}
	return FormatRunID(now, id.String()), nil
}

// FormatRunID joins a timestamp and suffix.
func FormatRunID(now time.Time, suffix string) string {
	return now.UTC().Format("20060102T150405Z") + "-" + suffix
}
