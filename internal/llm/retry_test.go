package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestRetry_SucceedsAfterTransientError(t *testing.T) {
	calls := 0
	resp, err := Retry(context.Background(), fastPolicy(), func(ctx context.Context) (*LLMResponse, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("503 ServiceUnavailableException")
		}
		return &LLMResponse{Content: "ok"}, nil
	})

	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if resp.Content != "ok" || calls != 2 {
		t.Errorf("Unexpected result: content=%q calls=%d", resp.Content, calls)
	}
}

func TestRetry_NonRetryableStopsImmediately(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastPolicy(), func(ctx context.Context) (*LLMResponse, error) {
		calls++
		return nil, errors.New("invalid request: bad parameter")
	})

	if err == nil || calls != 1 {
		t.Errorf("Expected single failing call, got calls=%d err=%v", calls, err)
	}
}

func TestRetry_QuotaErrorSurvivesExhaustion(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastPolicy(), func(ctx context.Context) (*LLMResponse, error) {
		calls++
		return nil, WrapError("gemini", errors.New("Error 429, RESOURCE_EXHAUSTED"))
	})

	if calls != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls)
	}
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("Expected ErrQuotaExceeded in chain, got %v", err)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{MaxRetries: 5, InitialDelay: time.Second, MaxDelay: time.Second}

	_, err := Retry(ctx, policy, func(ctx context.Context) (*LLMResponse, error) {
		cancel()
		return nil, errors.New("connection reset by peer")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestCalculateBackoff_CappedWithJitter(t *testing.T) {
	for attempt := 0; attempt < 10; attempt++ {
		d := calculateBackoff(attempt, 100*time.Millisecond, time.Second)
		if d > 1200*time.Millisecond {
			t.Errorf("attempt %d: backoff %v exceeds cap plus jitter", attempt, d)
		}
	}
}
