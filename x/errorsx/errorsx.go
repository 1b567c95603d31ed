package errorsx

import (
	"github.com/pkg/errors"
)

// StackTracer is implemented by errors carrying a recorded stack trace.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// StatusCodeCarrier is implemented by errors that map to an HTTP status code.
type StatusCodeCarrier interface {
	error
	StatusCode() int
}

// ReasonCarrier is implemented by errors exposing a human readable reason.
type ReasonCarrier interface {
	error
	Reason() string
}

// WithStack wraps err with a stack trace unless it already carries one. Calling
// it on nil returns nil.
func WithStack(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(StackTracer); ok {
		return err
	}

	return errors.WithStack(err)
}

// Cause unwraps err to its root cause.
func Cause(err error) error {
	return errors.Cause(err)
}
