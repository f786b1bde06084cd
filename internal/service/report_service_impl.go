package service

import (
	"context"
	"fmt"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/repository"
)

type reportService struct {
	employees repository.EmployeeRepo
	sessions  repository.WorkSessionRepo
	monthly   repository.MonthlyWorkRepo
	observer  UseCaseObserver
}

func NewReportService(
	employees repository.EmployeeRepo,
	sessions repository.WorkSessionRepo,
	monthly repository.MonthlyWorkRepo,
	observers ...UseCaseObserver,
) ReportService {
	return &reportService{
		employees: employees,
		sessions:  sessions,
		monthly:   monthly,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// GetMonthlyReport returns the stored monthly total alongside a per-session
// breakdown. The two are read independently and are not reconciled: admin
// corrections to raw sessions never touch the total.
func (s *reportService) GetMonthlyReport(ctx context.Context, actor Actor, employeeID int64, year, month int) (report *domain.MonthlyReport, err error) {
	fields := map[string]any{
		"employee_id": employeeID,
		"actor_id":    actor.EmployeeID,
		"year":        year,
		"month":       month,
	}
	defer observe(ctx, s.observer, "monthly-report", time.Now(), fields, &err)

	if !actor.IsAdmin && actor.EmployeeID != employeeID {
		return nil, fmt.Errorf("reading another employee's report: %w", domain.ErrForbidden)
	}
	if err = domain.ValidateYearMonth(year, month); err != nil {
		return nil, err
	}

	var employee *domain.Employee
	if employee, err = s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	from, to := domain.MonthRange(year, time.Month(month), time.Local)
	var total *domain.MonthlyWork
	if total, err = s.monthly.Get(ctx, employeeID, from); err != nil {
		return nil, err
	}

	var sessions []*domain.WorkSession
	if sessions, err = s.sessions.ListByEmployeeBetween(ctx, employeeID, from, to); err != nil {
		return nil, err
	}

	report = &domain.MonthlyReport{
		EmployeeID:         employee.ID,
		EmployeeName:       employee.Name,
		Year:               year,
		Month:              month,
		TotalWorkedMinutes: total.WorkedMinutes,
		DailyStats:         make([]domain.DailyStat, 0, len(sessions)),
	}
	for _, session := range sessions {
		report.DailyStats = append(report.DailyStats, domain.NewDailyStat(*session))
	}
	fields["total_minutes"] = report.TotalWorkedMinutes
	return report, nil
}
