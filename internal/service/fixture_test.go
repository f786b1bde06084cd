package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/auth"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/db"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/repository"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "service-test-secret"

type fixture struct {
	db        *sql.DB
	clock     *testutil.Clock
	observer  *recordingObserver
	hasher    *auth.BcryptHasher
	tokens    *auth.TokenIssuer
	employees *repository.SQLEmployeeRepo
	sessions  *repository.SQLWorkSessionRepo
	monthly   *repository.SQLMonthlyWorkRepo

	attendance AttendanceService
	reports    ReportService
	staff      EmployeeService
	auth       AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithDB(t, testutil.NewTestDB(t))
}

func newFixtureWithDB(t *testing.T, database *sql.DB) *fixture {
	t.Helper()
	f := &fixture{
		db:        database,
		clock:     testutil.NewClock(time.Date(2025, time.January, 15, 9, 0, 0, 0, time.Local)),
		observer:  &recordingObserver{},
		hasher:    auth.NewBcryptHasher(bcrypt.MinCost),
		employees: repository.NewSQLEmployeeRepo(database),
		sessions:  repository.NewSQLWorkSessionRepo(database),
		monthly:   repository.NewSQLMonthlyWorkRepo(database, db.SQLite),
	}
	f.tokens = auth.NewTokenIssuer(testSecret, 0).WithClock(f.clock.Now)
	uow := testutil.NewTestUoW(database)

	f.attendance = NewAttendanceService(f.employees, f.sessions, uow, db.SQLite, f.clock.Now, f.observer)
	f.reports = NewReportService(f.employees, f.sessions, f.monthly, f.observer)
	f.staff = NewEmployeeService(f.employees, f.sessions, f.hasher, uow, db.SQLite)
	f.auth = NewAuthService(f.employees, f.hasher, f.tokens, uow, f.observer)
	return f
}

func (f *fixture) createEmployee(t *testing.T, username string, opts ...testutil.EmployeeOption) *domain.Employee {
	t.Helper()
	e := testutil.NewTestEmployee(username, opts...)
	require.NoError(t, f.employees.Create(context.Background(), e))
	return e
}

// workSession checks in at the given local time and checks out after d.
func (f *fixture) workSession(t *testing.T, employeeID int64, checkIn time.Time, d time.Duration) {
	t.Helper()
	ctx := context.Background()
	f.clock.Set(checkIn)
	_, err := f.attendance.CheckIn(ctx, employeeID)
	require.NoError(t, err)
	f.clock.Advance(d)
	_, err = f.attendance.CheckOut(ctx, employeeID)
	require.NoError(t, err)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

func local(y int, m time.Month, d, h, min, s int) time.Time {
	return time.Date(y, m, d, h, min, s, 0, time.Local)
}
