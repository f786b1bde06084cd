package service

import (
	"context"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	EmployeeID int64
	IsAdmin    bool
}

// AttendanceService is the check-in/check-out state machine. Every call
// names the employee explicitly.
type AttendanceService interface {
	CheckIn(ctx context.Context, employeeID int64) (*domain.WorkSession, error)
	CheckOut(ctx context.Context, employeeID int64) (*domain.WorkSession, error)
	GetCurrentSession(ctx context.Context, employeeID int64) (*domain.SessionView, error)
	GetMonthlyStats(ctx context.Context, employeeID int64, year, month int) ([]domain.SessionView, error)
}

type ReportService interface {
	GetMonthlyReport(ctx context.Context, actor Actor, employeeID int64, year, month int) (*domain.MonthlyReport, error)
}

type CreateEmployeeInput struct {
	Name     string
	Username string
	Password string
	IsAdmin  bool
}

type UpdateEmployeeInput struct {
	ID       int64
	Name     string
	Username string
	IsAdmin  bool
}

// WorkHoursInput is an administrator's manual session entry. A nil CheckOut
// records an open session.
type WorkHoursInput struct {
	EmployeeID int64
	CheckIn    time.Time
	CheckOut   *time.Time
}

type EmployeeService interface {
	Create(ctx context.Context, in CreateEmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, in UpdateEmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	ChangePassword(ctx context.Context, id int64, newPassword string) error
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	AddWorkHours(ctx context.Context, in WorkHoursInput) (*domain.WorkSession, error)
}

// AuthResult is a signed-in employee and their bearer token.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Employee  *domain.Employee
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	// SetupAdmin creates the first administrator. It fails with
	// domain.ErrAlreadySetUp once any employee exists.
	SetupAdmin(ctx context.Context, username, password string) (*AuthResult, error)
}

// TokenIssuer signs bearer tokens for employees.
type TokenIssuer interface {
	Issue(e *domain.Employee) (string, time.Time, error)
}
