// Package retry implements exponential backoff for transient infrastructure
// failures. Business errors are never retried; callers gate on
// apperrors.Retryable before reaching for this.
package retry

import (
	"context"
	"math"
	"time"
)

type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultConfig backs off 100ms, 200ms, 400ms with three attempts total,
// which keeps a storage blip inside a normal request timeout.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
	}
}

// Func is one attempt of the operation being retried.
type Func func(ctx context.Context) error

// ShouldRetryFunc decides whether an error is worth another attempt.
type ShouldRetryFunc func(err error) bool

// Do runs fn, retrying per config while shouldRetry approves the error.
// Returns the last error when attempts are exhausted or the context ends.
func Do(ctx context.Context, config *Config, shouldRetry ShouldRetryFunc, fn Func) error {
	if config == nil {
		config = DefaultConfig()
	}

	var lastErr error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt >= config.MaxAttempts || shouldRetry == nil || !shouldRetry(lastErr) {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delayFor(config, attempt)):
		}
	}

	return lastErr
}

func delayFor(config *Config, attempt int) time.Duration {
	delay := float64(config.InitialDelay) * math.Pow(config.Multiplier, float64(attempt-1))
	if delay > float64(config.MaxDelay) {
		return config.MaxDelay
	}
	return time.Duration(delay)
}
