// Package errors provides the error kinds that abort the container startup.
package errors

import (
	"errors"
	"fmt"
)

// Kind is the category of a fatal startup error.
type Kind string

const (
	// KindMissingDependency indicates a required external tool is absent.
	KindMissingDependency Kind = "missing_dependency"
	// KindMissingConfig indicates required configuration is unset.
	KindMissingConfig Kind = "missing_config"
	// KindIO indicates a file could not be read, written or moved.
	KindIO Kind = "io"
)

// Error is a fatal startup error with its kind and underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit status for this error kind.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindMissingConfig:
		return 2
	case KindMissingDependency:
		return 3
	default:
		return 1
	}
}

func MissingDependency(message string, cause error) *Error {
	return &Error{Kind: KindMissingDependency, Message: message, Cause: cause}
}

func MissingConfig(message string) *Error {
	return &Error{Kind: KindMissingConfig, Message: message}
}

// IO wraps a filesystem failure, naming the operation and the path involved.
func IO(op, path string, cause error) *Error {
	return &Error{Kind: KindIO, Message: fmt.Sprintf("%s %s", op, path), Cause: cause}
}

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// ExitCode maps err to a process exit status. A nil error is 0 and an
// error without a kind is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.ExitCode()
	}
	return 1
}
