package service

import (
	"errors"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
)

// clockOrDefault falls back to the wall clock.
func clockOrDefault(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}

// timestamp drops the monotonic reading and sub-microsecond digits so the
// value returned to callers equals the stored one.
func timestamp(now func() time.Time) time.Time {
	return now().Truncate(time.Microsecond)
}

// isBusinessError reports whether err is one of the expected domain outcomes.
func isBusinessError(err error) bool {
	for _, kind := range []error{
		domain.ErrNotFound,
		domain.ErrConflict,
		domain.ErrValidation,
		domain.ErrUnauthorized,
		domain.ErrForbidden,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
