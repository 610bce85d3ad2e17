// Package errors provides the coded error type used throughout examd and
// helpers for categorizing errors.
package errors

import (
	"context"
	"errors"
	"strings"
)

// IsRetryableError determines if an error is transient and the operation should be retried.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check if context was cancelled - not retryable
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return hasCode(err, func(code ERR) bool {
		switch code {
		case ERR_NETWORK_TIMEOUT,
			ERR_NETWORK_ERROR,
			ERR_NETWORK_CONNECTION_REFUSED:
			return true
		}

		return false
	})
}

// IsNetworkError determines if an error is network-related.
// This includes timeouts, connection failures, foreign magic and invalid responses.
//
// Parameters:
//   - err: Error to check
//
// Returns:
//   - bool: true if error is network-related
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	if hasCode(err, func(code ERR) bool {
		return code >= ERR_NETWORK_ERROR && code <= ERR_INVALID_IP
	}) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	networkStrings := []string{
		"connection refused",
		"connection reset",
		"no such host",
		"i/o timeout",
		"dial tcp",
		"dial udp",
		"broken pipe",
	}

	for _, s := range networkStrings {
		if strings.Contains(errStr, s) {
			return true
		}
	}

	return false
}

// IsMaliciousResponseError determines if an error indicates a peer that speaks
// another network or sends malformed data.
func IsMaliciousResponseError(err error) bool {
	if err == nil {
		return false
	}

	return hasCode(err, func(code ERR) bool {
		switch code {
		case ERR_NETWORK_INVALID_RESPONSE,
			ERR_NETWORK_MAGIC_MISMATCH:
			return true
		}

		return false
	})
}

// IsContextError determines if an error is related to context cancellation or deadline.
func IsContextError(err error) bool {
	if err == nil {
		return false
	}

	if err == context.Canceled || err == context.DeadlineExceeded {
		return true
	}

	if hasCode(err, func(code ERR) bool {
		return code == ERR_CONTEXT_CANCELED
	}) {
		return true
	}

	if Is(err, context.Canceled) || Is(err, context.DeadlineExceeded) {
		return true
	}

	return false
}

// GetErrorCategory returns a string representing the category of the error.
// This is useful for logging.
//
// Parameters:
//   - err: Error to categorize
//
// Returns:
//   - string: Error category (e.g., "context", "network", "malicious", "address", "block", "unknown")
func GetErrorCategory(err error) string {
	if err == nil {
		return "none"
	}

	if IsContextError(err) {
		return "context"
	}

	if IsMaliciousResponseError(err) {
		return "malicious"
	}

	if IsNetworkError(err) {
		return "network"
	}

	var tErr *Error
	if As(err, &tErr) {
		code := tErr.Code()
		switch {
		case code >= 1 && code <= 9:
			return "general"
		case code >= 10 && code <= 19:
			return "block"
		case code >= 70 && code <= 79:
			return "address"
		case code >= 100 && code <= 109:
			return "state"
		}
	}

	return "unknown"
}

// hasCode walks the chain of coded errors and reports whether any code matches.
func hasCode(err error, match func(ERR) bool) bool {
	for err != nil {
		var tErr *Error
		if !errors.As(err, &tErr) {
			return false
		}

		if match(tErr.Code()) {
			return true
		}

		err = tErr.Unwrap()
	}

	return false
}
