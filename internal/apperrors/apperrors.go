// Package apperrors defines the error taxonomy shared by services and
// handlers. Services wrap storage failures with %w and return these
// sentinels for the cases callers branch on.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers unknown challenge ids and similar lookups.
	// A missing profile row is NOT an error; services fall back to
	// zero-state defaults instead.
	ErrNotFound = errors.New("not found")

	// ErrChallengeCompleted means the (user, challenge, day) completion
	// already exists. Points were credited by the first call only.
	ErrChallengeCompleted = errors.New("challenge already completed today")
)

// ValidationError rejects bad input before anything is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
