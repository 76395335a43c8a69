// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/peoplesearch/pkg/fields"
)

var (
	// ErrInvalidArgument is fields.ErrInvalidArgument, re-exported so callers
	// of this package need not import fields to test for it.
	ErrInvalidArgument = fields.ErrInvalidArgument
	ErrMissingAPIKey   = errors.New("API key is missing")
	// ErrUnsearchable wraps every failure caused by the query person.
	ErrUnsearchable = errors.New("unsearchable request")
	// ErrMalformedResponse means a successful response whose body is not a
	// JSON object.
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a failure reported by the API, or a transport failure that
// produced no response body.
type APIError struct {
	Message        string
	Warnings       []string
	HTTPStatusCode int
	Quota          Quota

	cause error
}

func (e *APIError) Error() string {
	if e.HTTPStatusCode == 0 {
		return "search API error: " + e.Message
	}
	return fmt.Sprintf("search API error (HTTP %d): %s", e.HTTPStatusCode, e.Message)
}

// Unwrap returns the transport error behind a synthetic APIError.
func (e *APIError) Unwrap() error { return e.cause }

// IsUserError reports whether the caller caused the failure (HTTP 4xx).
func (e *APIError) IsUserError() bool {
	return e.HTTPStatusCode >= 400 && e.HTTPStatusCode <= 499
}

// IsProviderError reports whether the failure is on the provider's side.
func (e *APIError) IsProviderError() bool { return !e.IsUserError() }

// APIErrorFromWire decodes an error body and the quota headers.
func APIErrorFromWire(m map[string]any, headers map[string]string) *APIError {
	return &APIError{
		Message:        str(m["error"]),
		Warnings:       strs(m["warnings"]),
		HTTPStatusCode: num(m["@http_status_code"]),
		Quota:          QuotaFromHeaders(headers),
	}
}

// transportError wraps a failure that produced no body.
func transportError(err error, status int, headers map[string]string) *APIError {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	return &APIError{
		Message:        msg,
		HTTPStatusCode: status,
		Quota:          QuotaFromHeaders(headers),
		cause:          err,
	}
}

func (e *APIError) ToWire() map[string]any {
	m := map[string]any{
		"error":            e.Message,
		"@http_status_code": e.HTTPStatusCode,
	}
	if len(e.Warnings) > 0 {
		m["warnings"] = e.Warnings
	}
	return m
}
