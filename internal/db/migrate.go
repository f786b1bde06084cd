package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Migrate runs all schema migrations for the dialect. Statements are
// idempotent and re-run on every start.
func Migrate(db *sql.DB, d Dialect) error {
	var stmts []string
	switch d {
	case SQLite:
		stmts = sqliteMigrations
	case MySQL:
		stmts = mysqlMigrations
	default:
		return fmt.Errorf("no migrations for driver %q", d)
	}

	for i, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ... ADD COLUMN fails once the column exists.
			if strings.Contains(strings.ToLower(err.Error()), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillCreatedAt(db, time.Now()); err != nil {
		return fmt.Errorf("backfilling employee created_at: %w", err)
	}
	return nil
}

// Rows created before employees.created_at existed carry the empty default.
func migrateBackfillCreatedAt(db *sql.DB, now time.Time) error {
	_, err := db.Exec(`UPDATE employees SET created_at = ? WHERE created_at = ''`,
		now.In(time.Local).Format(TimeLayout))
	return err
}

var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_admin      INTEGER NOT NULL DEFAULT 0 CHECK(is_admin IN (0, 1))
	)`,
	`CREATE TABLE IF NOT EXISTS work_sessions (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		check_in    TEXT NOT NULL,
		check_out   TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_sessions_employee_check_in ON work_sessions(employee_id, check_in)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_work_sessions_one_open ON work_sessions(employee_id) WHERE check_out IS NULL`,
	`CREATE TABLE IF NOT EXISTS monthly_works (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id    INTEGER NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		month_start    TEXT NOT NULL,
		worked_minutes INTEGER NOT NULL DEFAULT 0,
		UNIQUE(employee_id, month_start)
	)`,
	`ALTER TABLE employees ADD COLUMN created_at TEXT NOT NULL DEFAULT ''`,
}

// MySQL has no partial indexes, so the open-session rule is a unique key on a
// generated column that is NULL once the session is closed. MySQL also rejects
// ON DELETE CASCADE on a base column of a stored generated column, so
// work_sessions rows are removed explicitly when an employee is deleted.
var mysqlMigrations = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id            BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name          VARCHAR(255) NOT NULL,
		username      VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		is_admin      TINYINT(1) NOT NULL DEFAULT 0,
		UNIQUE KEY uq_employees_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS work_sessions (
		id               BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		employee_id      BIGINT NOT NULL,
		check_in         VARCHAR(26) NOT NULL,
		check_out        VARCHAR(26) NULL,
		open_employee_id BIGINT GENERATED ALWAYS AS (IF(check_out IS NULL, employee_id, NULL)) STORED,
		KEY idx_work_sessions_employee_check_in (employee_id, check_in),
		UNIQUE KEY uq_work_sessions_one_open (open_employee_id),
		CONSTRAINT fk_work_sessions_employee FOREIGN KEY (employee_id) REFERENCES employees(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS monthly_works (
		id             BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		employee_id    BIGINT NOT NULL,
		month_start    CHAR(10) NOT NULL,
		worked_minutes INT NOT NULL DEFAULT 0,
		UNIQUE KEY uq_monthly_works_employee_month (employee_id, month_start),
		CONSTRAINT fk_monthly_works_employee FOREIGN KEY (employee_id) REFERENCES employees(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`ALTER TABLE employees ADD COLUMN created_at VARCHAR(26) NOT NULL DEFAULT ''`,
}
