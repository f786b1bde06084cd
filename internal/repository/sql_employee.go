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

const employeeColumns = `id, name, username, password_hash, is_admin, created_at`

// SQLEmployeeRepo implements EmployeeRepo for both dialects.
type SQLEmployeeRepo struct {
	db db.DBTX
}

func NewSQLEmployeeRepo(conn db.DBTX) *SQLEmployeeRepo {
	return &SQLEmployeeRepo{db: conn}
}

// Create inserts e and sets e.ID. A duplicate username yields
// domain.ErrUsernameTaken.
func (r *SQLEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	query := `INSERT INTO employees (name, username, password_hash, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		e.Name,
		e.Username,
		e.PasswordHash,
		boolToInt(e.IsAdmin),
		formatTime(e.CreatedAt),
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("inserting employee: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading employee id: %w", err)
	}
	e.ID = id
	return nil
}

func (r *SQLEmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	return scanEmployee(row)
}

func (r *SQLEmployeeRepo) GetByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE username = ?`, username)
	return scanEmployee(row)
}

func (r *SQLEmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return employees, nil
}

// Update writes name, username and admin flag. Callers check existence
// first: MySQL reports zero affected rows when nothing changed.
func (r *SQLEmployeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	query := `UPDATE employees SET name = ?, username = ?, is_admin = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, e.Name, e.Username, boolToInt(e.IsAdmin), e.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("updating employee: %w", err)
	}
	return nil
}

func (r *SQLEmployeeRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE employees SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("updating employee password: %w", err)
	}
	return nil
}

func (r *SQLEmployeeRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading deleted employee count: %w", err)
	}
	if n == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *SQLEmployeeRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting employees: %w", err)
	}
	return n, nil
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var e domain.Employee
	var isAdmin int
	var createdAt string
	if err := row.Scan(&e.ID, &e.Name, &e.Username, &e.PasswordHash, &isAdmin, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("scanning employee: %w", err)
	}
	e.IsAdmin = isAdmin != 0
	if createdAt != "" {
		t, err := parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		e.CreatedAt = t
	}
	return &e, nil
}
