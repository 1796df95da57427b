package errors

import (
	"errors"
)

// Sentinel errors for different categories
var (
	// ErrStorageCorruption - persisted approvals present but unreadable (recover as empty store, log only)
	ErrStorageCorruption = errors.New("storage corruption")

	// ErrUnknownExportTarget - export format outside json/csv/spreadsheet-csv (show notice, emit nothing)
	ErrUnknownExportTarget = errors.New("unknown export target")

	// ErrEmissionFailure - file could not be emitted (show notice, no automatic retry)
	ErrEmissionFailure = errors.New("emission failure")

	// ErrConfirmationDeclined - user cancelled a destructive action (no-op, never reported as failure)
	ErrConfirmationDeclined = errors.New("confirmation declined")

	// ErrExportInFlight - another export is still running on the same board
	ErrExportInFlight = errors.New("export in flight")

	// ErrInvalidInput - invalid input (show validation error)
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound - resource not found
	ErrNotFound = errors.New("not found")

	// ErrConflict - record id already present in the store
	ErrConflict = errors.New("conflict")
)
