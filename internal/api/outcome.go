package api

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Outcome is the classified result of one transport attempt: a received
// HTTP response (success or protocol failure) or a transport-level failure.
type Outcome struct {
	// Status is the HTTP status code, 0 when no response was received.
	Status int
	// Header holds the response headers, nil for transport failures.
	Header http.Header
	// Body is the raw response body, nil for transport failures.
	Body []byte
	// Err is the transport-level failure, nil when a response was received.
	Err error
}

// Success reports whether the attempt produced a 2xx response.
func (o Outcome) Success() bool {
	return o.Err == nil && o.Status >= 200 && o.Status < 300
}

// TransportFailure reports whether the attempt failed before a response
// was received.
func (o Outcome) TransportFailure() bool {
	return o.Err != nil
}

// Timeout reports whether a transport failure was caused by an expired
// deadline, either the per-request timeout or a caller-supplied context.
func (o Outcome) Timeout() bool {
	if o.Err == nil {
		return false
	}
	if errors.Is(o.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(o.Err, &netErr) && netErr.Timeout()
}
