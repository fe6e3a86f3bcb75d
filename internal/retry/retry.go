package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// Func is a single attempt at producing an answer.
type Func func(ctx context.Context) (string, error)

// Event describes a failed attempt that will be retried.
type Event struct {
	// Attempt is the 1-based number of the attempt that failed.
	Attempt int
	// Total is the maximum number of attempts (MaxRetries + 1).
	Total int
	// Remaining is the number of attempts still available.
	Remaining int
	Wait      time.Duration
	Err       error
}

// Executor runs a Func with bounded exponential-backoff retries.
//
// Attempt n (0-based) either succeeds and returns immediately, or fails. A
// failure with n < MaxRetries reports an Event, sleeps Backoff(n), and moves
// to attempt n+1. A failure at n == MaxRetries returns an *ExhaustedError.
type Executor struct {
	MaxRetries int
	RetryWait  time.Duration
	// Backoff returns the wait after the failed 0-based attempt. Defaults to
	// Exponential(RetryWait).
	Backoff func(attempt int) time.Duration
	// Sleep suspends between attempts. Defaults to SleepContext.
	Sleep   func(ctx context.Context, d time.Duration) error
	OnRetry func(Event)
}

// MaxBackoff is the largest wait Exponential returns.
const MaxBackoff = time.Duration(math.MaxInt64)

// Exponential returns base * 2^attempt, saturating at MaxBackoff.
func Exponential(base time.Duration) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		if base <= 0 {
			return 0
		}
		if attempt < 0 {
			attempt = 0
		}
		if attempt >= 63 || base > MaxBackoff>>uint(attempt) {
			return MaxBackoff
		}
		return base << uint(attempt)
	}
}

// SleepContext waits for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs fn until it succeeds, fails permanently, or exhausts its attempts.
func (e Executor) Do(ctx context.Context, fn Func) (string, error) {
	if fn == nil {
		return "", fmt.Errorf("retry: func is nil")
	}
	maxRetries := e.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := e.Backoff
	if backoff == nil {
		backoff = Exponential(e.RetryWait)
	}
	sleep := e.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		answer, err := fn(ctx)
		if err == nil {
			return answer, nil
		}
		lastErr = err
		if isPermanent(err) || ctx.Err() != nil {
			return "", &ExhaustedError{Attempts: attempt + 1, Err: err}
		}
		if attempt == maxRetries {
			break
		}
		wait := backoff(attempt)
		if e.OnRetry != nil {
			e.OnRetry(Event{
				Attempt:   attempt + 1,
				Total:     maxRetries + 1,
				Remaining: maxRetries - attempt,
				Wait:      wait,
				Err:       err,
			})
		}
		if err := sleep(ctx, wait); err != nil {
			return "", err
		}
	}
	return "", &ExhaustedError{Attempts: maxRetries + 1, Err: lastErr}
}

// ExhaustedError reports that no attempt succeeded.
type ExhaustedError struct {
	Attempts int
	Err      error
}

// Error returns a readable message including the last failure.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("provider call failed after %d attempt(s): %v", e.Attempts, e.Err)
}

// Unwrap returns the last attempt's error.
func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }

func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func isPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}
