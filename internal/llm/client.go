// Package llm wraps the external text-reasoning capability behind a
// single Complete contract. Call-sites never branch on backend shape;
// every backend returns raw text that callers run through the tolerant
// JSON parser when they expect structured output.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Client is the one capability contract of the pipeline.
type Client interface {
	// Complete sends system instructions and user content and returns
	// the generated text.
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
	// Name identifies the backend for provenance fields.
	Name() string
}

// RetryableError indicates a transient backend failure worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable llm error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// CompleteWithRetry calls the client with a bounded retry count and
// linear backoff. Only transient errors are retried; everything else
// returns immediately so callers can degrade per their own rules.
func CompleteWithRetry(ctx context.Context, c Client, system, user string, temperature float64, retries int, backoff time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		out, err := c.Complete(ctx, system, user, temperature)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			break
		}
	}
	return "", lastErr
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Truncate caps s at limit bytes without splitting a multibyte rune.
// Callers use it to enforce prompt character budgets.
func Truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
