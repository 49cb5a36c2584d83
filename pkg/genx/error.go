package genx

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is matched by errors from a failed backend call.
	ErrTransport = errors.New("genx: transport error")

	// ErrEmptyResponse is returned when the backend answered without any
	// usable text or audio.
	ErrEmptyResponse = errors.New("genx: empty response")

	// ErrMalformedResponse is returned when no JSON value could be found in
	// or parsed from the response text.
	ErrMalformedResponse = errors.New("genx: malformed response")
)

// TransportError wraps the error returned by the backend. Unwrap returns the
// backend error untouched so callers can branch on provider-specific
// signals such as an unrecognized API key.
type TransportError struct {
	Kind  Kind
	Model string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("genx: %s request to %s failed: %v", e.Kind, e.Model, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ResponseError reports a response that could not be used. Err is
// ErrEmptyResponse or ErrMalformedResponse. Text holds the offending
// response text, if any.
type ResponseError struct {
	Err    error
	Kind   Kind
	Reason string
	Text   string
}

func (e *ResponseError) Error() string {
	msg := e.Err.Error()
	if e.Kind != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Kind)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Text != "" {
		msg += fmt.Sprintf(": %q", truncate(e.Text, 256))
	}
	return msg
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
