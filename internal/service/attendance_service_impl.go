package service

import (
	"context"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/db"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/repository"
)

type attendanceService struct {
	employees repository.EmployeeRepo
	sessions  repository.WorkSessionRepo
	uow       db.UnitOfWork
	dialect   db.Dialect
	now       func() time.Time
	observer  UseCaseObserver
}

// NewAttendanceService builds the session tracker. now may be nil to use
// the wall clock.
func NewAttendanceService(
	employees repository.EmployeeRepo,
	sessions repository.WorkSessionRepo,
	uow db.UnitOfWork,
	dialect db.Dialect,
	now func() time.Time,
	observers ...UseCaseObserver,
) AttendanceService {
	return &attendanceService{
		employees: employees,
		sessions:  sessions,
		uow:       uow,
		dialect:   dialect,
		now:       clockOrDefault(now),
		observer:  useCaseObserverOrNoop(observers),
	}
}

// CheckIn opens a session at the current time. The open-session unique
// index decides races: the losing insert reports domain.ErrAlreadyCheckedIn.
func (s *attendanceService) CheckIn(ctx context.Context, employeeID int64) (session *domain.WorkSession, err error) {
	fields := map[string]any{"employee_id": employeeID}
	defer observe(ctx, s.observer, "check-in", time.Now(), fields, &err)

	if _, err = s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	session = &domain.WorkSession{EmployeeID: employeeID, CheckIn: timestamp(s.now)}
	if err = s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	fields["session_id"] = session.ID
	return session, nil
}

// CheckOut closes the open session and credits its whole minutes to the
// check-in month, all in one transaction.
func (s *attendanceService) CheckOut(ctx context.Context, employeeID int64) (closed *domain.WorkSession, err error) {
	fields := map[string]any{"employee_id": employeeID}
	defer observe(ctx, s.observer, "check-out", time.Now(), fields, &err)

	checkOut := timestamp(s.now)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEmployees := repository.NewSQLEmployeeRepo(tx)
		txSessions := repository.NewSQLWorkSessionRepo(tx)
		txMonthly := repository.NewSQLMonthlyWorkRepo(tx, s.dialect)

		if _, err := txEmployees.GetByID(ctx, employeeID); err != nil {
			return err
		}

		open, err := txSessions.GetOpen(ctx, employeeID)
		if err != nil {
			return err
		}

		minutes, err := open.Close(checkOut)
		if err != nil {
			return err
		}
		if err := txSessions.Close(ctx, open.ID, checkOut); err != nil {
			return err
		}
		if err := txMonthly.AddMinutes(ctx, employeeID, open.Month(), minutes); err != nil {
			return err
		}

		fields["session_id"] = open.ID
		fields["worked_minutes"] = minutes
		closed = open
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

func (s *attendanceService) GetCurrentSession(ctx context.Context, employeeID int64) (*domain.SessionView, error) {
	open, err := s.sessions.GetOpen(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	view := domain.NewSessionView(*open, s.now())
	return &view, nil
}

// GetMonthlyStats lists the sessions checked in during the month, oldest
// first. Open sessions are measured up to now.
func (s *attendanceService) GetMonthlyStats(ctx context.Context, employeeID int64, year, month int) (views []domain.SessionView, err error) {
	fields := map[string]any{"employee_id": employeeID, "year": year, "month": month}
	defer observe(ctx, s.observer, "monthly-stats", time.Now(), fields, &err)

	if err = domain.ValidateYearMonth(year, month); err != nil {
		return nil, err
	}

	from, to := domain.MonthRange(year, time.Month(month), time.Local)
	var sessions []*domain.WorkSession
	sessions, err = s.sessions.ListByEmployeeBetween(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views = make([]domain.SessionView, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, domain.NewSessionView(*session, now))
	}
	fields["sessions"] = len(views)
	return views, nil
}
