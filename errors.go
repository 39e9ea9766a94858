// SPDX-License-Identifier: GPL-3.0-or-later

package sfsconn

import (
	"errors"
	"fmt"
)

// Code classifies a failed operation.
//
// Every error returned by this package is an [*Error] carrying one of
// the codes declared below.
type Code string

// Argument and setup error codes.
const (
	// InvalidArgument indicates that the caller passed an unusable value
	// (e.g., an empty URL or a nil configuration).
	InvalidArgument Code = "invalid_argument"

	// ConnectionSetupFailed indicates that we could not configure the
	// transport handle or the request before starting the transfer.
	ConnectionSetupFailed Code = "connection_setup_failed"

	// ConnectionUnexpectedError indicates a transport-level failure that
	// is not a timeout, including aborting an oversized response.
	ConnectionUnexpectedError Code = "connection_unexpected_error"
)

// HTTP error codes.
const (
	// HttpTimeout indicates that the transfer did not complete in time.
	HttpTimeout Code = "http_timeout"

	// HttpBadRequest maps the 400 and 405 status codes.
	HttpBadRequest Code = "http_bad_request"

	// HttpNotFound maps the 404 status code.
	HttpNotFound Code = "http_not_found"

	// HttpServiceNotAvailable maps the 503 status code.
	HttpServiceNotAvailable Code = "http_service_not_available"

	// HttpUnexpected maps any other non-200 status code.
	HttpUnexpected Code = "http_unexpected"
)

// String returns the string representation of the code.
func (c Code) String() string {
	return string(c)
}

// ErrResponseTooLarge is the cause attached to the [*Error] returned when the
// response body exceeds [Config.MaxResponseSize] and the transfer is aborted.
var ErrResponseTooLarge = errors.New("response body too large")

// Error is the error type returned by every fallible operation.
//
// The zero Message is never produced by this package: every failure
// carries a human-readable description.
type Error struct {
	// Code is the failure classification.
	Code Code

	// Message is a human-readable explanation.
	Message string

	// Cause is the wrapped underlying error, if any.
	Cause error
}

// Option is a functional option for [E].
type Option func(*Error) *Error

// WithCauseOption attaches a cause on construction.
func WithCauseOption(err error) Option {
	return func(e *Error) *Error {
		return e.WithCause(err)
	}
}

// E constructs a new [*Error] and applies all the options in order.
func E(code Code, msg string, opts ...Option) *Error {
	e := &Error{Code: code, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements error.
//
// The format is `<code>: <message>`.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithCause returns a shallow copy of e with the given cause attached.
//
// When err is nil, e is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}

// CodeOf returns the [Code] of the first [*Error] in err's chain.
//
// It returns the empty code when err is nil or does not wrap an [*Error].
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
