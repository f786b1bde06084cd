package repository

import (
	"context"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
)

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByUsername(ctx context.Context, username string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// WorkSessionRepo stores check-in/check-out cycles. The store allows at most
// one open session per employee; Create reports a second one as
// domain.ErrAlreadyCheckedIn.
type WorkSessionRepo interface {
	Create(ctx context.Context, s *domain.WorkSession) error
	GetOpen(ctx context.Context, employeeID int64) (*domain.WorkSession, error)
	Close(ctx context.Context, id int64, checkOut time.Time) error
	ListByEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.WorkSession, error)
	DeleteByEmployee(ctx context.Context, employeeID int64) error
}

// MonthlyWorkRepo stores per-employee monthly minute totals.
type MonthlyWorkRepo interface {
	// AddMinutes atomically creates or increments the total for the month
	// containing month.
	AddMinutes(ctx context.Context, employeeID int64, month time.Time, minutes int) error
	Get(ctx context.Context, employeeID int64, month time.Time) (*domain.MonthlyWork, error)
	DeleteByEmployee(ctx context.Context, employeeID int64) error
}
