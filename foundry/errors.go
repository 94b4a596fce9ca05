// Copyright (c) Microsoft. All rights reserved.

package foundry

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrConfig indicates missing or invalid configuration. It is always
	// detected before any network call is made.
	ErrConfig = errors.New("configuration error")

	// ErrService is the base error for remote service failures.
	ErrService = errors.New("service error")

	// ErrAuth indicates an authentication or authorization failure, either
	// while building a credential or reported by the service (401/403).
	ErrAuth = fmt.Errorf("%w: authentication", ErrService)

	// ErrNotFound indicates the addressed resource or deployment does not exist.
	ErrNotFound = fmt.Errorf("%w: not found", ErrService)

	// ErrRateLimit indicates the service throttled the request.
	ErrRateLimit = fmt.Errorf("%w: rate limited", ErrService)

	// ErrInvalidRequest indicates the request was malformed or invalid.
	ErrInvalidRequest = fmt.Errorf("%w: invalid request", ErrService)

	// ErrContentFilter indicates the request was rejected by a content filter.
	ErrContentFilter = fmt.Errorf("%w: content filter", ErrService)

	// ErrInvalidResponse indicates the service returned an unexpected response.
	ErrInvalidResponse = fmt.Errorf("%w: invalid response", ErrService)

	// ErrPollTimeout is returned when a poll exceeds its wait budget.
	ErrPollTimeout = errors.New("polling timed out")
)

// ServiceError describes a failed remote call. It carries the HTTP status
// code so callers can branch on it without parsing messages.
// Use errors.As to extract it from a wrapped error chain.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode == 0 {
		// Reported inside an already accepted stream.
		if e.Code == "" {
			return "service error: " + e.Message
		}
		return fmt.Sprintf("service error (%s): %s", e.Code, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("service error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("service error %d: %s", e.StatusCode, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Hint returns operator guidance for the status code, or "" when there is
// nothing more specific to say than the message itself.
func (e *ServiceError) Hint() string {
	if e.Code == "content_filter" {
		return "The response was blocked by the content filter. Rephrase the prompt."
	}
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "Authentication failed. Check API key or Azure credentials."
	case http.StatusNotFound:
		return "Resource not found. Verify deployment name and endpoint."
	case http.StatusTooManyRequests:
		return "Rate limit exceeded. Please retry later."
	default:
		return ""
	}
}

// NewServiceError builds a [ServiceError] and picks the sentinel it wraps
// from the status code and service error code.
func NewServiceError(status int, code, message string) *ServiceError {
	return &ServiceError{
		StatusCode: status,
		Code:       code,
		Message:    message,
		Err:        ClassifyStatus(status, code),
	}
}

// ClassifyStatus maps an HTTP status and service error code to a sentinel.
func ClassifyStatus(status int, code string) error {
	switch {
	case code == "content_filter":
		return ErrContentFilter
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrAuth
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusTooManyRequests:
		return ErrRateLimit
	case status == http.StatusBadRequest:
		return ErrInvalidRequest
	default:
		return ErrService
	}
}

// StatusCode returns the status code of the first [ServiceError] in err's
// chain, or 0 if there is none.
func StatusCode(err error) int {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.StatusCode
	}
	return 0
}
