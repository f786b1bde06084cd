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

// SQLMonthlyWorkRepo implements MonthlyWorkRepo. The upsert statement is
// dialect specific.
type SQLMonthlyWorkRepo struct {
	db      db.DBTX
	dialect db.Dialect
}

func NewSQLMonthlyWorkRepo(conn db.DBTX, d db.Dialect) *SQLMonthlyWorkRepo {
	return &SQLMonthlyWorkRepo{db: conn, dialect: d}
}

const (
	sqliteAddMinutes = `INSERT INTO monthly_works (employee_id, month_start, worked_minutes)
		VALUES (?, ?, ?)
		ON CONFLICT(employee_id, month_start)
		DO UPDATE SET worked_minutes = worked_minutes + excluded.worked_minutes`

	mysqlAddMinutes = `INSERT INTO monthly_works (employee_id, month_start, worked_minutes)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE worked_minutes = worked_minutes + VALUES(worked_minutes)`
)

// AddMinutes is a single statement, so concurrent closes in the same month
// never lose an increment.
func (r *SQLMonthlyWorkRepo) AddMinutes(ctx context.Context, employeeID int64, month time.Time, minutes int) error {
	query := sqliteAddMinutes
	if r.dialect == db.MySQL {
		query = mysqlAddMinutes
	}
	if _, err := r.db.ExecContext(ctx, query, employeeID, monthKey(month), minutes); err != nil {
		return fmt.Errorf("adding monthly minutes: %w", err)
	}
	return nil
}

func (r *SQLMonthlyWorkRepo) Get(ctx context.Context, employeeID int64, month time.Time) (*domain.MonthlyWork, error) {
	query := `SELECT id, employee_id, month_start, worked_minutes
		FROM monthly_works WHERE employee_id = ? AND month_start = ?`
	var w domain.MonthlyWork
	var monthStart string
	err := r.db.QueryRowContext(ctx, query, employeeID, monthKey(month)).
		Scan(&w.ID, &w.EmployeeID, &monthStart, &w.WorkedMinutes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMonthlyWorkNotFound
		}
		return nil, fmt.Errorf("scanning monthly work: %w", err)
	}
	w.Month, err = time.ParseInLocation(db.DateLayout, monthStart, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parsing month %q: %w", monthStart, err)
	}
	return &w, nil
}

func (r *SQLMonthlyWorkRepo) DeleteByEmployee(ctx context.Context, employeeID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM monthly_works WHERE employee_id = ?`, employeeID); err != nil {
		return fmt.Errorf("deleting monthly works: %w", err)
	}
	return nil
}
