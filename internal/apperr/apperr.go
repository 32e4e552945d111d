// Package apperr defines the error classes shared by the catalog components.
// Components wrap one of the sentinels below so callers can classify a failure
// with errors.Is while the message keeps the detail.
package apperr

import (
	"github.com/pkg/errors"
)

var (
	// ErrValidation is returned when a required field is missing or empty.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an item, image or category does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference is returned for a malformed image reference.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrStorage is returned when the persistence layer is unreachable or a write failed.
	ErrStorage = errors.New("storage error")
)

// Validation wraps ErrValidation with a formatted message.
func Validation(format string, args ...any) error {
	return errors.Wrapf(ErrValidation, format, args...)
}

// NotFound wraps ErrNotFound with a formatted message.
func NotFound(format string, args ...any) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

// InvalidReference wraps ErrInvalidReference naming the offending reference.
func InvalidReference(ref string) error {
	return errors.Wrapf(ErrInvalidReference, "%q", ref)
}

// Storage wraps ErrStorage, keeping the text of the underlying cause.
func Storage(cause error, msg string) error {
	if cause == nil {
		return errors.Wrap(ErrStorage, msg)
	}

	return errors.Wrapf(ErrStorage, "%s: %v", msg, cause)
}
