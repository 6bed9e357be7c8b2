// Package auth implements account management, credential verification and
// signed session cookies for the registry.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"padron/internal/metrics"
	"padron/internal/padron"
)

// ErrInvalidCredentials is returned for every failed login. An unknown email
// and a wrong password are deliberately indistinguishable so the login form
// cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service manages accounts on top of a padron.Store.
type Service struct {
	store   padron.Store
	metrics *metrics.Metrics
}

// NewService creates a Service. metrics may be nil.
func NewService(store padron.Store, m *metrics.Metrics) *Service {
	return &Service{store: store, metrics: m}
}

// NormalizeEmail lowercases and trims an email address. All lookups and
// inserts go through this, which makes email uniqueness case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashPassword derives a bcrypt hash from a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CreateAccount registers a new account. A colliding email yields
// padron.ErrDuplicateEmail; infrastructure faults surface as distinct,
// wrapped errors so callers cannot confuse the two.
func (s *Service) CreateAccount(ctx context.Context, email, password, role string) (padron.Account, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return padron.Account{}, errors.New("email is required")
	}
	if role != padron.RoleAdmin && role != padron.RoleUser {
		return padron.Account{}, fmt.Errorf("unknown role %q", role)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return padron.Account{}, err
	}

	acc := padron.Account{Email: email, PasswordHash: hash, Role: role}
	id, err := s.store.InsertAccount(ctx, acc)
	if err != nil {
		return padron.Account{}, err
	}
	acc.ID = id
	return acc, nil
}

// Authenticate verifies an email/password pair and returns the account on
// success. Every failure path returns ErrInvalidCredentials except genuine
// storage faults, which propagate wrapped.
func (s *Service) Authenticate(ctx context.Context, email, password string) (padron.Account, error) {
	acc, err := s.store.FindAccountByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, padron.ErrNotFound) {
			s.metrics.IncAuthFailure()
			return padron.Account{}, ErrInvalidCredentials
		}
		return padron.Account{}, fmt.Errorf("find account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		s.metrics.IncAuthFailure()
		return padron.Account{}, ErrInvalidCredentials
	}
	return acc, nil
}
