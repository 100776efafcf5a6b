// Package errors provides the error taxonomy shared by the orderflow
// engine and its host surfaces. Errors carry a Kind so callers can
// dispatch on failure class without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Standard error functions
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// Kind classifies an engine failure.
type Kind string

const (
	// KindEmptyQueue is returned by ProcessNext when nothing is pending.
	KindEmptyQueue Kind = "EmptyQueue"
	// KindValidation marks an order rejected for missing required fields.
	KindValidation Kind = "Validation"
	// KindAvailability marks a failed or timed-out availability check.
	KindAvailability Kind = "Availability"
	// KindNotUndoable marks an undo attempt on a non-reversible entry.
	KindNotUndoable Kind = "NotUndoable"
	// KindUnknown is the fallback for unclassified failures.
	KindUnknown Kind = "Unknown"
)

// Error is a classified error with an optional wrapped cause.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`

	cause error
}

var _ error = (*Error)(nil)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the Kind from err, unwrapping as needed.
// Errors outside this package report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
