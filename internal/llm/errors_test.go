package llm

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapError(t *testing.T) {
	if WrapError("gpt", nil) != nil {
		t.Error("Expected nil for nil error")
	}

	quota := WrapError("anthropic", errors.New("rate_limit_error: slow down"))
	if !errors.Is(quota, ErrQuotaExceeded) {
		t.Errorf("Expected quota error to wrap ErrQuotaExceeded, got %v", quota)
	}
	if !strings.HasPrefix(quota.Error(), "anthropic:") {
		t.Errorf("Expected provider prefix, got %q", quota.Error())
	}

	other := WrapError("bedrock", errors.New("ValidationException"))
	if errors.Is(other, ErrQuotaExceeded) {
		t.Error("Validation error must not be tagged as quota")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "throttling", err: errors.New("ThrottlingException: Rate exceeded"), want: true},
		{name: "overloaded", err: errors.New("overloaded_error"), want: true},
		{name: "timeout", err: errors.New("i/o timeout"), want: true},
		{name: "validation", err: errors.New("ValidationException: bad input"), want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsRetryableError(test.err); got != test.want {
				t.Errorf("IsRetryableError(%v) = %v, want %v", test.err, got, test.want)
			}
		})
	}
}
