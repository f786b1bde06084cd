package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/db"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
)

const workSessionColumns = `id, employee_id, check_in, check_out`

// SQLWorkSessionRepo implements WorkSessionRepo for both dialects.
type SQLWorkSessionRepo struct {
	db db.DBTX
}

func NewSQLWorkSessionRepo(conn db.DBTX) *SQLWorkSessionRepo {
	return &SQLWorkSessionRepo{db: conn}
}

// Create inserts s and sets s.ID. When s is open and the employee already
// has an open session, the open-session unique index rejects the row and
// Create returns domain.ErrAlreadyCheckedIn.
func (r *SQLWorkSessionRepo) Create(ctx context.Context, s *domain.WorkSession) error {
	query := `INSERT INTO work_sessions (employee_id, check_in, check_out) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		s.EmployeeID,
		formatTime(s.CheckIn),
		nullableTimeToString(s.CheckOut),
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return domain.ErrAlreadyCheckedIn
		}
		return fmt.Errorf("inserting work session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading work session id: %w", err)
	}
	s.ID = id
	return nil
}

func (r *SQLWorkSessionRepo) GetOpen(ctx context.Context, employeeID int64) (*domain.WorkSession, error) {
	query := `SELECT ` + workSessionColumns + ` FROM work_sessions
		WHERE employee_id = ? AND check_out IS NULL`
	s, err := scanWorkSession(r.db.QueryRowContext(ctx, query, employeeID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoActiveSession
	}
	return s, err
}

// Close stamps check_out on a still-open session. Exactly one row must
// change, so a session is closed at most once even under concurrent calls.
func (r *SQLWorkSessionRepo) Close(ctx context.Context, id int64, checkOut time.Time) error {
	query := `UPDATE work_sessions SET check_out = ? WHERE id = ? AND check_out IS NULL`
	res, err := r.db.ExecContext(ctx, query, formatTime(checkOut), id)
	if err != nil {
		return fmt.Errorf("closing work session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading closed session count: %w", err)
	}
	if n != 1 {
		return domain.ErrNoActiveSession
	}
	return nil
}

// ListByEmployeeBetween returns sessions whose check-in lies in [from, to),
// ordered by check-in.
func (r *SQLWorkSessionRepo) ListByEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.WorkSession, error) {
	query := `SELECT ` + workSessionColumns + ` FROM work_sessions
		WHERE employee_id = ? AND check_in >= ? AND check_in < ?
		ORDER BY check_in, id`
	rows, err := r.db.QueryContext(ctx, query, employeeID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("listing work sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.WorkSession
	for rows.Next() {
		s, err := scanWorkSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning work session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLWorkSessionRepo) DeleteByEmployee(ctx context.Context, employeeID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM work_sessions WHERE employee_id = ?`, employeeID); err != nil {
		return fmt.Errorf("deleting work sessions: %w", err)
	}
	return nil
}

// scanWorkSession returns sql.ErrNoRows unwrapped so callers can map it.
func scanWorkSession(row rowScanner) (*domain.WorkSession, error) {
	var s domain.WorkSession
	var checkIn string
	var checkOut sql.NullString
	if err := row.Scan(&s.ID, &s.EmployeeID, &checkIn, &checkOut); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work session: %w", err)
	}

	in, err := parseTime(checkIn)
	if err != nil {
		return nil, err
	}
	s.CheckIn = in
	if s.CheckOut, err = parseNullableTime(checkOut); err != nil {
		return nil, err
	}
	return &s, nil
}
