package errors

import (
	"context"
	"errors"
	"fmt"
)

// Category returns the contribdesk error category for an error
func Category(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrStorageCorruption):
		return "StorageCorruption"
	case errors.Is(err, ErrUnknownExportTarget):
		return "UnknownExportTarget"
	case errors.Is(err, ErrEmissionFailure):
		return "EmissionFailure"
	case errors.Is(err, ErrConfirmationDeclined):
		return "ConfirmationDeclined"
	case errors.Is(err, ErrExportInFlight):
		return "ExportInFlight"
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInput"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrConflict):
		return "Conflict"
	default:
		return "Unknown"
	}
}

// IsUserFacing reports whether an error must be shown to the user as a notice.
// Declined confirmations and corruption (already recovered) are not.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrConfirmationDeclined) || errors.Is(err, ErrStorageCorruption) {
		return false
	}
	return true
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", message, err)
}

// WrapWithCategory tags err with a category while keeping the cause inspectable
func WrapWithCategory(err error, message string, category error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w: %w", message, category, err)
}

// IsCategory checks if error belongs to specific category
func IsCategory(err error, category error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, category)
}

func UnknownExportTarget(message string) error {
	return fmt.Errorf("%s: %w", message, ErrUnknownExportTarget)
}

func EmissionFailure(message string) error {
	return fmt.Errorf("%s: %w", message, ErrEmissionFailure)
}

// NotFound wraps error as not found
func NotFound(message string) error {
	return fmt.Errorf("%s: %w", message, ErrNotFound)
}

// InvalidInput wraps error as invalid input
func InvalidInput(message string) error {
	return fmt.Errorf("%s: %w", message, ErrInvalidInput)
}

// Conflict wraps error as conflict
func Conflict(message string) error {
	return fmt.Errorf("%s: %w", message, ErrConflict)
}
