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

// SetupAdminName is the display name given to the bootstrap administrator.
const SetupAdminName = "Admin"

type authService struct {
	employees repository.EmployeeRepo
	hasher    auth.PasswordHasher
	tokens    TokenIssuer
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewAuthService(
	employees repository.EmployeeRepo,
	hasher auth.PasswordHasher,
	tokens TokenIssuer,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AuthService {
	return &authService{
		employees: employees,
		hasher:    hasher,
		tokens:    tokens,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Login does not distinguish an unknown username from a wrong password.
func (s *authService) Login(ctx context.Context, username, password string) (result *AuthResult, err error) {
	fields := map[string]any{"username": username}
	defer observe(ctx, s.observer, "login", time.Now(), fields, &err)

	var e *domain.Employee
	e, err = s.employees.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err = s.hasher.Compare(e.PasswordHash, password); err != nil {
		return nil, err
	}

	fields["employee_id"] = e.ID
	return s.issue(e)
}

func (s *authService) SetupAdmin(ctx context.Context, username, password string) (result *AuthResult, err error) {
	fields := map[string]any{"username": username}
	defer observe(ctx, s.observer, "setup-admin", time.Now(), fields, &err)

	admin := &domain.Employee{Name: SetupAdminName, Username: username, IsAdmin: true}
	admin.Normalize()
	if err = admin.Validate(); err != nil {
		return nil, err
	}
	if admin.PasswordHash, err = s.hasher.Hash(password); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEmployees := repository.NewSQLEmployeeRepo(tx)
		n, err := txEmployees.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrAlreadySetUp
		}
		return txEmployees.Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}

	fields["employee_id"] = admin.ID
	return s.issue(admin)
}

func (s *authService) issue(e *domain.Employee) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(e)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, Employee: e}, nil
}
