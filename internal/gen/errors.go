package gen

import (
	"errors"
	"fmt"
	"net"
)

// Runtime errors.
var (
	// ErrEmptyCompletion indicates the provider returned no choices.
	ErrEmptyCompletion = errors.New("provider returned empty completion")

	errContextCancelledBeforeRetry = errors.New("context cancelled before retry")
	errContextCancelledDuringRetry = errors.New("context cancelled during retry")
	errAllRetriesExhausted         = errors.New("all retries exhausted")
)

// HTTPError carries a non-2xx provider response. The status code decides
// retryability: 408, 429, and 5xx are transient, everything else is not.
type HTTPError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the status indicates a transient condition.
func (e *HTTPError) Retryable() bool {
	switch {
	case e.StatusCode == requestTimeoutStatusCode:
		return true
	case e.StatusCode == tooManyRequestsStatusCode:
		return true
	case e.StatusCode >= serverErrorStatusThreshold:
		return true
	}
	return false
}

// isRetryable classifies an error for the retry middleware. Network-level
// failures and transient HTTP statuses retry; malformed requests and
// authentication failures do not.
func isRetryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Retryable()
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return false
}
