package auth

import (
	"errors"
	"fmt"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past 72 bytes.
const maxPasswordBytes = 72

// PasswordHasher hashes and verifies employee passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns domain.ErrInvalidCredentials on mismatch.
	Compare(hash, password string) error
}

type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher at the given cost; 0 selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
		return domain.ErrInvalidCredentials
	}
	return fmt.Errorf("comparing password: %w", err)
}

// ValidatePassword rejects passwords bcrypt cannot hash faithfully.
func ValidatePassword(password string) error {
	if password == "" {
		return domain.ValidationError("password is required")
	}
	if len(password) > maxPasswordBytes {
		return domain.ValidationError("password is longer than %d bytes", maxPasswordBytes)
	}
	return nil
}
