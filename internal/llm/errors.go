package llm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuotaExceeded marks provider rate-limit and quota rejections.
	// Callers should ask the user to retry later.
	ErrQuotaExceeded = errors.New("llm quota exceeded")
	ErrEmptyResponse = errors.New("llm returned an empty response")
)

// WrapError annotates a provider error, tagging quota failures with
// ErrQuotaExceeded so they can be detected with errors.Is.
func WrapError(provider string, err error) error {
	if err == nil {
		return nil
	}
	if IsQuotaError(err) {
		return fmt.Errorf("%s: %w: %v", provider, ErrQuotaExceeded, err)
	}
	return fmt.Errorf("unable to invoke %s model: %w", provider, err)
}

func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "Quota exceeded") ||
		strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errStr, "ThrottlingException") ||
		strings.Contains(errStr, "TooManyRequestsException") ||
		strings.Contains(errStr, "rate_limit_error")
}

// IsRetryableError reports whether a provider error is transient.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// 1. Throttling errors
	if IsQuotaError(err) || strings.Contains(err.Error(), "Rate exceeded") {
		return true
	}

	errStr := err.Error()

	// 2. Service errors (5xx)
	if strings.Contains(errStr, "InternalServerException") ||
		strings.Contains(errStr, "ServiceUnavailableException") ||
		strings.Contains(errStr, "overloaded_error") ||
		strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "503") {
		return true
	}

	// 3. Network errors
	if strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "EOF") ||
		strings.Contains(errStr, "timeout") {
		return true
	}

	// Non-retryable errors (4xx client errors, validation errors, etc.)
	return false
}
