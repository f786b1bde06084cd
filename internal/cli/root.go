package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/auth"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/config"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/db"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/repository"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// App holds the configuration and services used by CLI commands. The store
// is opened lazily, after flags are parsed.
type App struct {
	Config config.Config
	Logger *slog.Logger

	DB      *sql.DB
	Dialect db.Dialect
	Tokens  *auth.TokenIssuer

	Attendance service.AttendanceService
	Reports    service.ReportService
	Employees  service.EmployeeService
	Auth       service.AuthService

	now        func() time.Time
	logOut     io.Writer
	isTerminal func() bool
	prompt     func(*credentials) error
}

// AppOption customizes an App.
type AppOption func(*App)

// WithClock sets the clock used for check-in and check-out times.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) { a.now = now }
}

// WithLogOutput sends logs to w instead of stderr.
func WithLogOutput(w io.Writer) AppOption {
	return func(a *App) { a.logOut = w }
}

// NewApp returns an App that opens the configured store on first use.
func NewApp(cfg config.Config, opts ...AppOption) *App {
	a := &App{
		Config:     cfg,
		now:        time.Now,
		logOut:     os.Stderr,
		isTerminal: stdinIsTerminal,
		prompt:     promptCredentials,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewAppWithDB wires an App over an already migrated database.
func NewAppWithDB(cfg config.Config, database *sql.DB, d db.Dialect, opts ...AppOption) *App {
	a := NewApp(cfg, opts...)
	a.wire(database, d)
	return a
}

// open connects to the store and wires the services unless already done.
func (a *App) open() error {
	if a.DB != nil {
		return nil
	}
	if err := a.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	d, err := a.Config.Dialect()
	if err != nil {
		return err
	}
	database, err := db.Open(d, a.Config.DSN())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.wire(database, d)
	return nil
}

func (a *App) wire(database *sql.DB, d db.Dialect) {
	if a.Logger == nil {
		a.Logger = a.Config.NewLogger(a.logOut)
	}
	a.DB = database
	a.Dialect = d

	// Without JWT_SECRET only offline commands run. Tokens they sign
	// with the throwaway secret are never shown.
	secret := a.Config.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
	}
	a.Tokens = auth.NewTokenIssuer(secret, a.Config.TokenTTL).WithClock(a.now)

	employees := repository.NewSQLEmployeeRepo(database)
	sessions := repository.NewSQLWorkSessionRepo(database)
	monthly := repository.NewSQLMonthlyWorkRepo(database, d)
	uow := db.NewSQLUnitOfWork(database)
	hasher := auth.NewBcryptHasher(0)
	observer := service.NewLogUseCaseObserver(a.Logger)

	a.Attendance = service.NewAttendanceService(employees, sessions, uow, d, a.now, observer)
	a.Reports = service.NewReportService(employees, sessions, monthly, observer)
	a.Employees = service.NewEmployeeService(employees, sessions, hasher, uow, d)
	a.Auth = service.NewAuthService(employees, hasher, a.Tokens, uow, observer)
}

// Close releases the database, if one was opened.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	err := a.DB.Close()
	a.DB = nil
	return err
}

// NewRootCmd creates the top-level "attendance" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "attendance",
		Short:         "Employee check-in/check-out tracking service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open()
		},
	}
	app.Config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(app),
		newMigrateCmd(app),
		newSetupAdminCmd(app),
		newEmployeeCmd(app),
		newReportCmd(app),
	)
	return root
}

var errMissingCredentials = errors.New("username and password are required (use --username and --password)")
