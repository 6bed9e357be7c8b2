package auth

import (
	"context"
	"errors"
	"fmt"

	"padron/internal/padron"
)

// Bootstrap accounts created by Seed when their email is still free.
var seedAccounts = []struct {
	email    string
	password string
	role     string
}{
	{"admin@local", "admin123", padron.RoleAdmin},
	{"user1@local", "user123", padron.RoleUser},
	{"user2@local", "user123", padron.RoleUser},
}

// SeedResult reports which bootstrap accounts were created and which already
// existed.
type SeedResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

// Seed creates each bootstrap account whose email does not exist yet.
// Partial seeding is expected: existing emails are reported as skipped.
// Storage faults abort seeding.
func (s *Service) Seed(ctx context.Context) (SeedResult, error) {
	res := SeedResult{Created: []string{}, Skipped: []string{}}
	for _, sa := range seedAccounts {
		_, err := s.CreateAccount(ctx, sa.email, sa.password, sa.role)
		switch {
		case err == nil:
			res.Created = append(res.Created, sa.email)
		case errors.Is(err, padron.ErrDuplicateEmail):
			res.Skipped = append(res.Skipped, sa.email)
		default:
			return SeedResult{}, fmt.Errorf("seed %s: %w", sa.email, err)
		}
	}
	return res, nil
}
