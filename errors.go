package wata

import (
	"errors"

	"github.com/wata-pro/client-go/internal/apierrors"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrConnection matches network-level failures, including timeouts.
	ErrConnection = apierrors.ErrConnection

	// ErrTimeout matches requests that exceeded a deadline.
	ErrTimeout = apierrors.ErrTimeout

	// ErrUnauthorized matches 401 responses.
	ErrUnauthorized = apierrors.ErrUnauthorized

	// ErrForbidden matches 403 responses.
	ErrForbidden = apierrors.ErrForbidden

	// ErrNotFound matches 404 responses.
	ErrNotFound = apierrors.ErrNotFound

	// ErrValidation matches 400 responses.
	ErrValidation = apierrors.ErrValidation

	// ErrServer matches 5xx responses, including 503.
	ErrServer = apierrors.ErrServer

	// ErrServiceUnavailable matches 503 responses.
	ErrServiceUnavailable = apierrors.ErrServiceUnavailable

	// ErrParsing matches response bodies that could not be decoded.
	ErrParsing = apierrors.ErrParsing
)

// APIError is the root error type for all API failures. Use errors.As to
// reach the status code, message and raw response body, or errors.Is with
// the sentinels above to match a specific kind.
type APIError = apierrors.Error

// ErrorKind identifies one class of API failure.
type ErrorKind = apierrors.Kind

// Error kinds carried by APIError.
const (
	KindConnection         = apierrors.KindConnection
	KindTimeout            = apierrors.KindTimeout
	KindAuth               = apierrors.KindAuth
	KindForbidden          = apierrors.KindForbidden
	KindNotFound           = apierrors.KindNotFound
	KindValidation         = apierrors.KindValidation
	KindServer             = apierrors.KindServer
	KindServiceUnavailable = apierrors.KindServiceUnavailable
	KindParsing            = apierrors.KindParsing
	KindUnknown            = apierrors.KindUnknown
)
