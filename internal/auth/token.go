package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is how long an issued bearer token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims is the payload of an employee bearer token.
type Claims struct {
	EmployeeID int64       `json:"employee_id"`
	Username   string      `json:"username"`
	Name       string      `json:"name"`
	Role       domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}

// TokenIssuer signs and verifies HS256 bearer tokens with a shared secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the issuer's time source.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

// Issue signs a token for e and returns it with its expiry.
func (i *TokenIssuer) Issue(e *domain.Employee) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)
	claims := &Claims{
		EmployeeID: e.ID,
		Username:   e.Username,
		Name:       e.Name,
		Role:       e.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(e.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry. Every failure is reported
// as domain.ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwt.Token) (any, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.EmployeeID <= 0 || !domain.ValidRoles[string(claims.Role)] {
		return nil, fmt.Errorf("%w: token carries no employee identity", domain.ErrInvalidToken)
	}
	return claims, nil
}
