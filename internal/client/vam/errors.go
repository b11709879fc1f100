package vam

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnsupported   = errors.New("operation not supported for resource")
	ErrMissingParent = errors.New("parent identifier required")
	ErrMissingUUID   = errors.New("response has no uuid")
)

// TransportError is returned when request
// could not be completed: connection refused,
// DNS failure, timeout or cancelled context.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when response body
// can't be decoded. Raw response is kept for diagnostics.
type DecodeError struct {
	URL        string
	StatusCode int
	Reason     string
	Body       []byte
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("URL: %s\n%d (%s): %s: %v", e.URL, e.StatusCode, e.Reason, e.Body, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StatusError is returned for non-2xx answers
// and for lookups that returned empty result.
type StatusError struct {
	URL        string
	StatusCode int
	Reason     string
	Body       []byte
	// Message is server's "error" field if body is JSON.
	Message string

	notFound bool
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Body)
	}
	return fmt.Sprintf("URL: %s\n%d (%s): %s", e.URL, e.StatusCode, e.Reason, msg)
}

// Is reports NotFound answers as ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.notFound
}
