package pipedrive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"
)

// Operation labels the API call an error occurred in.
type Operation string

// Person operations.
const (
	OpSearch Operation = "person search"
	OpCreate Operation = "person creation"
	OpUpdate Operation = "person update"
)

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// APIError is a classified Pipedrive failure.
type APIError struct {
	// Op is the operation that failed.
	Op Operation

	// Message is the human-readable, operation-scoped description.
	Message string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Details is the raw response body, if any.
	Details []byte

	// Err is the underlying failure.
	Err error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Hint returns advice for statuses a user can act on, or "".
func (e *APIError) Hint() string {
	switch e.StatusCode {
	case http.StatusTooManyRequests:
		return "Rate limit exceeded. Please wait before making more requests."
	case http.StatusInternalServerError:
		return "Pipedrive server error. Please try again later."
	case http.StatusServiceUnavailable:
		return "Pipedrive service unavailable. Please try again later."
	default:
		return ""
	}
}

// Classify converts a raw failure from operation op into an *APIError.
//
// Checks run in priority order: network connectivity, timeout or abort,
// HTTP status, and finally anything else as unexpected. An error that is
// already an *APIError is returned unchanged.
func Classify(err error, op Operation) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if isNetworkError(err) {
		return &APIError{
			Op:      op,
			Message: fmt.Sprintf("Network connectivity issue during %s: %v", op, err),
			Err:     err,
		}
	}

	if isTimeout(err) {
		return &APIError{
			Op:      op,
			Message: fmt.Sprintf("Request timeout during %s: %v", op, err),
			Err:     err,
		}
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return classifyStatus(statusErr, op)
	}

	return &APIError{
		Op:      op,
		Message: fmt.Sprintf("Unexpected error during %s: %v", op, err),
		Err:     err,
	}
}

func classifyStatus(err *StatusError, op Operation) *APIError {
	var msg string
	switch err.StatusCode {
	case http.StatusUnauthorized:
		msg = fmt.Sprintf("Authentication failed during %s: Invalid API token", op)
	case http.StatusForbidden:
		msg = fmt.Sprintf("Access forbidden during %s: Insufficient permissions", op)
	case http.StatusBadRequest:
		msg = fmt.Sprintf("Bad request during %s: %s", op, badRequestMessage(err))
	case http.StatusNotFound:
		msg = fmt.Sprintf("Resource not found during %s: %v", op, err)
	case http.StatusTooManyRequests:
		msg = fmt.Sprintf("Rate limit exceeded during %s: Too many requests", op)
	case http.StatusInternalServerError:
		msg = fmt.Sprintf("Internal server error during %s: %v", op, err)
	case http.StatusServiceUnavailable:
		msg = fmt.Sprintf("Service unavailable during %s: %v", op, err)
	default:
		msg = fmt.Sprintf("API request failed during %s with status %d: %v", op, err.StatusCode, err)
	}

	return &APIError{
		Op:         op,
		Message:    msg,
		StatusCode: err.StatusCode,
		Details:    err.Body,
		Err:        err,
	}
}

// badRequestMessage prefers the "error" field of a JSON body.
func badRequestMessage(err *StatusError) string {
	var body map[string]json.RawMessage
	if json.Unmarshal(err.Body, &body) != nil {
		return err.Error()
	}
	raw, ok := body["error"]
	if !ok {
		return err.Error()
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}

func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && !dnsErr.IsTimeout {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, os.ErrDeadlineExceeded) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsRateLimited checks if the error is an HTTP 429.
func IsRateLimited(err error) bool {
	return statusOf(err) == http.StatusTooManyRequests
}

// IsUnauthorized checks if the error indicates an invalid API token.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsNotFound checks if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsServerError checks if the error is a 5xx response.
func IsServerError(err error) bool {
	code := statusOf(err)
	return code >= 500 && code < 600
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
