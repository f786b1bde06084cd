package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Specific errors wrap exactly one kind so callers can branch
// with errors.Is on either the specific error or its kind.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

var (
	ErrEmployeeNotFound    = fmt.Errorf("employee %w", ErrNotFound)
	ErrNoActiveSession     = fmt.Errorf("no active session: %w", ErrNotFound)
	ErrMonthlyWorkNotFound = fmt.Errorf("no monthly work recorded for the requested month: %w", ErrNotFound)

	ErrAlreadyCheckedIn = fmt.Errorf("already checked in: %w", ErrConflict)
	ErrAlreadySetUp     = fmt.Errorf("the first admin has already been created: %w", ErrConflict)

	ErrUsernameTaken = fmt.Errorf("username is already taken: %w", ErrValidation)

	ErrInvalidCredentials = fmt.Errorf("invalid username or password: %w", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("invalid or expired token: %w", ErrUnauthorized)
)

// ValidationError wraps ErrValidation with a field-specific message.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}
