package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padron/internal/padron"
	"padron/internal/padron/store"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.COM "))
	assert.Equal(t, "a@x.com", NormalizeEmail("a@x.com"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestCreateAccount(t *testing.T) {
	svc := NewService(store.NewMemory(), nil)
	ctx := context.Background()

	acc, err := svc.CreateAccount(ctx, "Admin@Local", "secret", padron.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin@local", acc.Email)
	assert.True(t, acc.IsAdmin())
	assert.NotEqual(t, "secret", acc.PasswordHash)
}

func TestCreateAccount_CaseInsensitiveCollision(t *testing.T) {
	svc := NewService(store.NewMemory(), nil)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "a@x.com", "pw", padron.RoleUser)
	require.NoError(t, err)

	_, err = svc.CreateAccount(ctx, "A@X.com", "pw", padron.RoleUser)
	assert.ErrorIs(t, err, padron.ErrDuplicateEmail)
}

func TestCreateAccount_Validation(t *testing.T) {
	svc := NewService(store.NewMemory(), nil)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "  ", "pw", padron.RoleUser)
	assert.Error(t, err)

	_, err = svc.CreateAccount(ctx, "a@x.com", "pw", "superuser")
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(store.NewMemory(), nil)
	ctx := context.Background()

	created, err := svc.CreateAccount(ctx, "a@x.com", "correct-pw", padron.RoleUser)
	require.NoError(t, err)

	acc, err := svc.Authenticate(ctx, "A@X.COM ", "correct-pw")
	require.NoError(t, err)
	assert.Equal(t, created.ID, acc.ID)
}

func TestAuthenticate_UniformFailure(t *testing.T) {
	svc := NewService(store.NewMemory(), nil)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "a@x.com", "correct-pw", padron.RoleUser)
	require.NoError(t, err)

	// Unknown email and wrong password fail identically.
	_, errUnknown := svc.Authenticate(ctx, "nobody@x.com", "whatever")
	_, errWrongPw := svc.Authenticate(ctx, "a@x.com", "wrong-pw")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestSeed(t *testing.T) {
	svc := NewService(store.NewMemory(), nil)
	ctx := context.Background()

	res, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin@local", "user1@local", "user2@local"}, res.Created)
	assert.Empty(t, res.Skipped)

	// Seeding again skips everything.
	res, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Created)
	assert.Equal(t, []string{"admin@local", "user1@local", "user2@local"}, res.Skipped)

	acc, err := svc.Authenticate(ctx, "admin@local", "admin123")
	require.NoError(t, err)
	assert.True(t, acc.IsAdmin())
}

func TestSeed_Partial(t *testing.T) {
	svc := NewService(store.NewMemory(), nil)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "user1@local", "something-else", padron.RoleUser)
	require.NoError(t, err)

	res, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin@local", "user2@local"}, res.Created)
	assert.Equal(t, []string{"user1@local"}, res.Skipped)

	// The pre-existing account keeps its password.
	_, err = svc.Authenticate(ctx, "user1@local", "user123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
