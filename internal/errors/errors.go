// Package errors provides standardized domain errors that express intent rather than
// transport details. Modules derive their own sentinels from these categories with Wrap,
// and handlers map the category to a status code or exit message.
package errors

import (
	"errors"
	"fmt"
)

// Standard error categories shared by every module.
var (
	// ErrInvalidInput indicates the caller supplied something that does not satisfy the rules.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates the operation exists but is switched off for this deployment.
	ErrForbidden = errors.New("forbidden")

	// ErrInternal indicates a broken invariant inside the application. It must never be
	// reachable through user input.
	ErrInternal = errors.New("internal error")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
