package testutil

import (
	"sync"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/auth"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Employee options
type EmployeeOption func(*domain.Employee)

func WithAdmin() EmployeeOption {
	return func(e *domain.Employee) {
		e.IsAdmin = true
	}
}

func WithName(name string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Name = name
	}
}

// WithPassword stores a real bcrypt hash of password at minimum cost.
func WithPassword(password string) EmployeeOption {
	return func(e *domain.Employee) {
		hash, err := auth.NewBcryptHasher(bcrypt.MinCost).Hash(password)
		if err != nil {
			panic(err)
		}
		e.PasswordHash = hash
	}
}

func NewTestEmployee(username string, opts ...EmployeeOption) *domain.Employee {
	e := &domain.Employee{
		Name:         "Test " + username,
		Username:     username,
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WorkSession options
type SessionOption func(*domain.WorkSession)

func WithCheckOut(t time.Time) SessionOption {
	return func(s *domain.WorkSession) {
		s.CheckOut = &t
	}
}

// WithWorkedMinutes closes the session the given number of minutes after check-in.
func WithWorkedMinutes(m int) SessionOption {
	return func(s *domain.WorkSession) {
		out := s.CheckIn.Add(time.Duration(m) * time.Minute)
		s.CheckOut = &out
	}
}

func NewTestSession(employeeID int64, checkIn time.Time, opts ...SessionOption) *domain.WorkSession {
	s := &domain.WorkSession{
		EmployeeID: employeeID,
		CheckIn:    checkIn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Clock is a settable time source for services that take a func() time.Time.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
