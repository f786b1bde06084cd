package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/db"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// formatTime converts t to the stored local-time representation.
func formatTime(t time.Time) string {
	return t.In(time.Local).Format(db.TimeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(db.TimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored time %q: %w", s, err)
	}
	return t, nil
}

// parseNullableTime returns nil for SQL NULL or an empty string.
func parseNullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullableTimeToString returns nil (SQL NULL) for a nil pointer.
func nullableTimeToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// monthKey is the stored anchor of the month containing t.
func monthKey(t time.Time) string {
	local := t.In(time.Local)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.Local).Format(db.DateLayout)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
