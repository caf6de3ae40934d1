package llm

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

type RetryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     12 * time.Second,
	}
}

// Retry calls invoke until it succeeds, returns a non-retryable error, the
// attempts run out or ctx is done.
func Retry(ctx context.Context, policy RetryPolicy, invoke func(ctx context.Context) (*LLMResponse, error)) (*LLMResponse, error) {
	if policy.MaxRetries <= 0 {
		return invoke(ctx)
	}

	var lastErr error

	for attempt := 0; attempt < policy.MaxRetries; attempt++ {
		response, err := invoke(ctx)
		if err == nil {
			return response, nil
		}

		lastErr = err

		// Check if error is retryable
		if !IsRetryableError(err) {
			return nil, fmt.Errorf("non-retryable error: %w", err)
		}

		if attempt == policy.MaxRetries-1 {
			break
		}

		delay := calculateBackoff(attempt, policy.InitialDelay, policy.MaxDelay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
			continue
		}
	}

	return nil, fmt.Errorf("max retries %d exceeded: %w", policy.MaxRetries, lastErr)
}

func calculateBackoff(attempt int, initialDelay, maxDelay time.Duration) time.Duration {
	backoff := float64(initialDelay) * math.Pow(2, float64(attempt))

	if backoff > float64(maxDelay) {
		backoff = float64(maxDelay)
	}

	jitter := backoff * 0.2 * (2*rand.Float64() - 1) // Random value between -20% and +20%
	backoff += jitter

	return time.Duration(backoff)
}
