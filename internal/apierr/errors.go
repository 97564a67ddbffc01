// Package apierr classifies LLM API failures into shared sentinels
// and provides the retry loop built on top of that classification.
//
// The API client wraps provider errors with fmt.Errorf("%s: %w", msg,
// sentinel); callers pick the outcome with errors.Is.
package apierr

import "errors"

// Sentinel errors for API interaction failures.
var (
	// ErrRateLimit indicates a temporary rate limit. Retryable.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrQuotaExceeded indicates an exhausted billing quota. Retrying
	// cannot help.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrTimeout indicates the request timed out or the provider
	// returned a transient server error. Retryable.
	ErrTimeout = errors.New("request timeout")

	// ErrAuthFailed indicates a rejected API key.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrBadRequest indicates a client error not covered by the other
	// sentinels.
	ErrBadRequest = errors.New("bad request")
)
