package ats

import (
	"context"
	"time"
)

// RetryConfig parameterizes the shared retry-with-backoff combinator.
type RetryConfig struct {
	// MaxAttempts is the total number of tries, first call included.
	MaxAttempts int
	// Base is the delay before the second attempt; it doubles per attempt.
	Base time.Duration
	// Retryable classifies an error as worth another attempt.
	Retryable func(error) bool
	// OnRetry, when set, observes each scheduled retry.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Retry runs fn up to cfg.MaxAttempts times, sleeping an exponentially
// growing delay between attempts while cfg.Retryable(err) holds. The first
// non-retryable error, the last error after exhaustion, or a cancelled
// context ends the loop.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	retryable := cfg.Retryable
	if retryable == nil {
		retryable = IsTransient
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !retryable(err) || attempt == attempts {
			break
		}

		delay := cfg.Base << (attempt - 1)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, delay)
		}
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return zero, lastErr
}
