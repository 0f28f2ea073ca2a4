package domain

import "errors"

var (
	// ErrCapacityFull means no seats remain; nothing was written.
	ErrCapacityFull = errors.New("no seats remaining")

	// ErrDuplicateEmail means the email already has an active registration.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrVerifyUnavailable means the duplicate-check query itself failed.
	// The submission must abort rather than fall through to create.
	ErrVerifyUnavailable = errors.New("unable to verify existing registrations")

	// ErrNoData means an export was requested over an empty collection.
	ErrNoData = errors.New("no data to export")

	ErrNotFound           = errors.New("registration not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no active session")
)

// ValidationError reports the first failing field only; validation is
// first-failure-wins so the user-facing message is deterministic.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
