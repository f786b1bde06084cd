package service

import (
	"context"
	"errors"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/auth"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/db"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/repository"
)

type employeeService struct {
	employees repository.EmployeeRepo
	sessions  repository.WorkSessionRepo
	hasher    auth.PasswordHasher
	uow       db.UnitOfWork
	dialect   db.Dialect
}

func NewEmployeeService(
	employees repository.EmployeeRepo,
	sessions repository.WorkSessionRepo,
	hasher auth.PasswordHasher,
	uow db.UnitOfWork,
	dialect db.Dialect,
) EmployeeService {
	return &employeeService{
		employees: employees,
		sessions:  sessions,
		hasher:    hasher,
		uow:       uow,
		dialect:   dialect,
	}
}

func (s *employeeService) Create(ctx context.Context, in CreateEmployeeInput) (*domain.Employee, error) {
	e := &domain.Employee{Name: in.Name, Username: in.Username, IsAdmin: in.IsAdmin}
	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	e.PasswordHash = hash

	if err := s.employees.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update rewrites the identity fields. Renaming onto a username held by
// another employee fails with domain.ErrUsernameTaken.
func (s *employeeService) Update(ctx context.Context, in UpdateEmployeeInput) (*domain.Employee, error) {
	var updated *domain.Employee
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEmployees := repository.NewSQLEmployeeRepo(tx)

		e, err := txEmployees.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}
		e.Name = in.Name
		e.Username = in.Username
		e.IsAdmin = in.IsAdmin
		e.Normalize()
		if err := e.Validate(); err != nil {
			return err
		}

		holder, err := txEmployees.GetByUsername(ctx, e.Username)
		switch {
		case err == nil && holder.ID != e.ID:
			return domain.ErrUsernameTaken
		case err != nil && !errors.Is(err, domain.ErrEmployeeNotFound):
			return err
		}

		if err := txEmployees.Update(ctx, e); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the employee with their sessions and monthly totals.
func (s *employeeService) Delete(ctx context.Context, id int64) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEmployees := repository.NewSQLEmployeeRepo(tx)
		if _, err := txEmployees.GetByID(ctx, id); err != nil {
			return err
		}
		if err := repository.NewSQLMonthlyWorkRepo(tx, s.dialect).DeleteByEmployee(ctx, id); err != nil {
			return err
		}
		if err := repository.NewSQLWorkSessionRepo(tx).DeleteByEmployee(ctx, id); err != nil {
			return err
		}
		return txEmployees.Delete(ctx, id)
	})
}

func (s *employeeService) ChangePassword(ctx context.Context, id int64, newPassword string) error {
	if _, err := s.employees.GetByID(ctx, id); err != nil {
		return err
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.employees.UpdatePassword(ctx, id, hash)
}

func (s *employeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

// AddWorkHours records a trusted manual session. It bypasses the check-in
// state machine and is not overlap-checked, and it leaves the monthly total
// untouched. A second open session is still rejected by the store.
func (s *employeeService) AddWorkHours(ctx context.Context, in WorkHoursInput) (*domain.WorkSession, error) {
	if in.CheckIn.IsZero() {
		return nil, domain.ValidationError("check-in time is required")
	}
	if _, err := s.employees.GetByID(ctx, in.EmployeeID); err != nil {
		return nil, err
	}

	session := &domain.WorkSession{
		EmployeeID: in.EmployeeID,
		CheckIn:    in.CheckIn.Truncate(time.Microsecond),
	}
	if in.CheckOut != nil {
		out := in.CheckOut.Truncate(time.Microsecond)
		session.CheckOut = &out
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
