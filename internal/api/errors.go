package api

import (
	"encoding/json"
	"strings"

	"github.com/wata-pro/client-go/internal/apierrors"
)

// Classify maps a non-success Outcome to its taxonomy error. It is a pure
// function: the same outcome always maps to the same kind. A successful
// outcome returns nil.
func Classify(o Outcome) error {
	if o.TransportFailure() {
		if o.Timeout() {
			return &apierrors.Error{
				Kind:    apierrors.KindTimeout,
				Message: "request timed out",
				Err:     o.Err,
			}
		}
		return &apierrors.Error{
			Kind:    apierrors.KindConnection,
			Message: "connection failed",
			Err:     o.Err,
		}
	}
	if o.Success() {
		return nil
	}

	msg, details := parseErrorEnvelope(o.Body)

	e := &apierrors.Error{
		StatusCode: o.Status,
		Message:    msg,
		Body:       o.Body,
	}
	switch {
	case o.Status == 401:
		e.Kind = apierrors.KindAuth
	case o.Status == 403:
		e.Kind = apierrors.KindForbidden
	case o.Status == 404:
		e.Kind = apierrors.KindNotFound
	case o.Status == 400:
		e.Kind = apierrors.KindValidation
		e.Details = details
	case o.Status == 503:
		e.Kind = apierrors.KindServiceUnavailable
	case o.Status >= 500 && o.Status <= 599:
		e.Kind = apierrors.KindServer
	default:
		e.Kind = apierrors.KindUnknown
	}
	return e
}

// errorEnvelope is the WATA API error response shape.
type errorEnvelope struct {
	Error struct {
		Code             string `json:"code"`
		Message          string `json:"message"`
		Details          string `json:"details"`
		ValidationErrors []struct {
			Message string   `json:"message"`
			Members []string `json:"members"`
		} `json:"validationErrors"`
	} `json:"error"`
}

// parseErrorEnvelope extracts the human message and validation detail from
// an error response body. Bodies that are not the expected envelope are
// returned trimmed as the message.
func parseErrorEnvelope(body []byte) (string, []string) {
	if len(body) == 0 {
		return "", nil
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		var details []string
		for _, ve := range env.Error.ValidationErrors {
			if len(ve.Members) > 0 {
				details = append(details, strings.Join(ve.Members, ", ")+": "+ve.Message)
			} else {
				details = append(details, ve.Message)
			}
		}
		if env.Error.Details != "" {
			details = append(details, env.Error.Details)
		}
		return env.Error.Message, details
	}

	return strings.TrimSpace(string(body)), nil
}
