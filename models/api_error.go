// ABOUTME: Typed errors for Tiny Tiny RSS API calls
// ABOUTME: Carries the machine-readable error code reported by the server

package models

import (
	"errors"
	"fmt"
)

// APIErrorCode is the machine-readable error code of a failed API call.
type APIErrorCode string

const (
	APIErrorNone           APIErrorCode = "NO_ERROR"
	APIErrorLoginFailed    APIErrorCode = "LOGIN_FAILED"
	APIErrorNotLoggedIn    APIErrorCode = "NOT_LOGGED_IN"
	APIErrorDisabled       APIErrorCode = "API_DISABLED"
	APIErrorIncorrectUsage APIErrorCode = "API_INCORRECT_USAGE"
	APIErrorFeedNotFound   APIErrorCode = "API_FEED_NOT_FOUND"
	APIErrorUnknownMethod  APIErrorCode = "API_UNKNOWN_METHOD"
	APIErrorUnknown        APIErrorCode = "API_UNKNOWN"
)

// APIError is returned for every failed remote API call.
type APIError struct {
	Code    APIErrorCode
	Message string
	Cause   error
}

// NewAPIError creates an APIError with the given code and message.
func NewAPIError(code APIErrorCode, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// WrapAPIError creates a transport-level APIError around an underlying error.
func WrapAPIError(message string, cause error) *APIError {
	return &APIError{Code: APIErrorUnknown, Message: message, Cause: cause}
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (code %s): %v", e.Message, e.Code, e.Cause)
	}
	return fmt.Sprintf("%s (code %s)", e.Message, e.Code)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsAuthenticationError reports whether the error is an authentication
// failure that warrants one session-invalidate-and-retry.
func (e *APIError) IsAuthenticationError() bool {
	return e.Code == APIErrorLoginFailed || e.Code == APIErrorNotLoggedIn
}

// AsAPIError extracts an APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// SubscribeResult is the outcome of a subscribe-to-feed request.
type SubscribeResult int

const (
	SubscribeSuccess SubscribeResult = iota
	SubscribeInvalidURL
	SubscribeUnknownError
)

func (r SubscribeResult) String() string {
	switch r {
	case SubscribeSuccess:
		return "SUCCESS"
	case SubscribeInvalidURL:
		return "INVALID_URL"
	default:
		return "UNKNOWN_ERROR"
	}
}
