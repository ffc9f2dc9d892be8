package utils

import "errors"

// Sentinel errors used by the service layer. Route handlers map these to
// HTTP statuses at the boundary.
var (
	// ErrValidation marks missing or malformed required input
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced document that is absent, inactive, or expired
	ErrNotFound = errors.New("not found")

	// ErrDuplicate marks a write rejected because the identity already submitted
	ErrDuplicate = errors.New("already submitted")
)

// ValidationError wraps ErrValidation with a human-readable message
func ValidationError(msg string) error {
	return &taggedError{tag: ErrValidation, msg: msg}
}

// NotFoundError wraps ErrNotFound with a human-readable message
func NotFoundError(msg string) error {
	return &taggedError{tag: ErrNotFound, msg: msg}
}

type taggedError struct {
	tag error
	msg string
}

func (e *taggedError) Error() string { return e.msg }
func (e *taggedError) Unwrap() error { return e.tag }
