// Package errors provides custom error types for the glassai core.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for common cases
var (
	ErrNoInput         = errors.New("no text or image provided")
	ErrInvalidResponse = errors.New("invalid response format")
)

// TimeoutError represents an analysis request that exceeded the timeout
// window. The message is user-facing: the orchestrator interpolates it into
// the assistant error reply as-is.
type TimeoutError struct {
	Endpoint string
}

func (e *TimeoutError) Error() string {
	return "Request timed out"
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(endpoint string) *TimeoutError {
	return &TimeoutError{Endpoint: endpoint}
}

// APIError represents a non-success HTTP status from the analysis endpoint
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, body string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Body:       body,
	}
}

// NetworkError represents a transport failure before any status was received
type NetworkError struct {
	Op       string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(op, endpoint string, err error) *NetworkError {
	return &NetworkError{Op: op, Endpoint: endpoint, Err: err}
}

// IsTimeout reports whether err is (or wraps) a request timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	var te *TimeoutError
	if errors.As(err, &te) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
