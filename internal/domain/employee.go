package domain

import (
	"strings"
	"time"
)

type Employee struct {
	ID           int64
	Name         string
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Role returns the role encoded into the employee's bearer tokens.
func (e *Employee) Role() Role {
	if e.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Normalize trims surrounding whitespace from the identity fields.
func (e *Employee) Normalize() {
	e.Name = strings.TrimSpace(e.Name)
	e.Username = strings.TrimSpace(e.Username)
}

// Validate checks the fields required before an employee is stored.
func (e *Employee) Validate() error {
	if e.Name == "" {
		return ValidationError("name is required")
	}
	if e.Username == "" {
		return ValidationError("username is required")
	}
	if len(e.Username) > 255 {
		return ValidationError("username %q is longer than 255 characters", e.Username)
	}
	return nil
}
