package services

import "errors"

// Failure taxonomy. All failures are terminal at the operation boundary;
// the handlers surface them and the user retries.
var (
	// ErrInvalidImportFormat marks a backup document missing the cases array
	ErrInvalidImportFormat = errors.New("invalid backup format")
	// ErrRemoteUnavailable marks a failed remote fetch or upload; local
	// state is untouched and the operation is safe to retry
	ErrRemoteUnavailable = errors.New("remote storage unavailable")
	// ErrValidation marks a rejected mutation; no partial record is written
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a lookup of a record that does not exist
	ErrNotFound = errors.New("record not found")
)
