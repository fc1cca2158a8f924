// Package apierrors provides the shared error taxonomy for the WATA client.
//
// Every failure surfaced by the SDK is an *Error carrying a Kind, the HTTP
// status code when a response was received, and the raw response body for
// diagnostics. Errors are immutable and fully self-describing.
package apierrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one class of API failure.
type Kind string

const (
	// KindConnection indicates a network-level failure before a response
	// was received.
	KindConnection Kind = "connection"
	// KindTimeout indicates the request or a caller deadline expired.
	// Timeouts are a specialization of connection failures.
	KindTimeout Kind = "timeout"
	// KindAuth indicates the bearer token was missing, invalid or expired (401).
	KindAuth Kind = "auth"
	// KindForbidden indicates the token lacks access to the resource (403).
	KindForbidden Kind = "forbidden"
	// KindNotFound indicates the requested resource does not exist (404).
	KindNotFound Kind = "not_found"
	// KindValidation indicates the request was rejected as malformed (400).
	KindValidation Kind = "validation"
	// KindServer indicates a 5xx server-side failure.
	KindServer Kind = "server"
	// KindServiceUnavailable indicates the API is temporarily down (503).
	// A specialization of server failures.
	KindServiceUnavailable Kind = "service_unavailable"
	// KindParsing indicates a response body could not be decoded.
	KindParsing Kind = "parsing"
	// KindUnknown is the fallback for status codes outside the taxonomy.
	KindUnknown Kind = "unknown"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrConnection matches network-level failures, including timeouts.
	ErrConnection = errors.New("connection failed")

	// ErrTimeout matches requests that exceeded a deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrUnauthorized matches 401 responses.
	ErrUnauthorized = errors.New("invalid or expired token")

	// ErrForbidden matches 403 responses.
	ErrForbidden = errors.New("access forbidden")

	// ErrNotFound matches 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation matches 400 responses.
	ErrValidation = errors.New("request validation failed")

	// ErrServer matches 5xx responses, including 503.
	ErrServer = errors.New("server error")

	// ErrServiceUnavailable matches 503 responses.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrParsing matches response bodies that could not be decoded.
	ErrParsing = errors.New("response parsing failed")
)

// Error is the root error type for all API failures.
type Error struct {
	// Kind is the taxonomy class of this failure.
	Kind Kind
	// StatusCode is the HTTP status code, 0 when no response was received.
	StatusCode int
	// Message is a human-readable description, taken from the API error
	// envelope when the server provided one.
	Message string
	// Body is the raw response body, nil when none was received.
	Body []byte
	// Details holds per-field validation messages for KindValidation errors.
	Details []string
	// Err is the underlying cause (transport or decode error), if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, "API error %d (%s)", e.StatusCode, e.Kind)
	} else {
		fmt.Fprintf(&b, "API error (%s)", e.Kind)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Details) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Details, "; "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching. Specializations
// match their parent sentinel as well: a timeout matches both ErrTimeout
// and ErrConnection, a 503 matches both ErrServiceUnavailable and ErrServer.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindConnection:
		return target == ErrConnection
	case KindTimeout:
		return target == ErrTimeout || target == ErrConnection
	case KindAuth:
		return target == ErrUnauthorized
	case KindForbidden:
		return target == ErrForbidden
	case KindNotFound:
		return target == ErrNotFound
	case KindValidation:
		return target == ErrValidation
	case KindServer:
		return target == ErrServer
	case KindServiceUnavailable:
		return target == ErrServiceUnavailable || target == ErrServer
	case KindParsing:
		return target == ErrParsing
	}
	return false
}
