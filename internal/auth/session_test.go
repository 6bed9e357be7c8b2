package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padron/internal/padron"
)

const testSecret = "test-secret-at-least-16-chars"

func TestSessions_RoundTrip(t *testing.T) {
	sessions := NewSessions(testSecret, time.Hour)

	token, err := sessions.Issue(padron.Account{ID: 42, Role: padron.RoleAdmin})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := sessions.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestSessions_WrongSecret(t *testing.T) {
	token, err := NewSessions(testSecret, time.Hour).Issue(padron.Account{ID: 1, Role: padron.RoleUser})
	require.NoError(t, err)

	_, err = NewSessions("another-secret-16-chars-long", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessions_Tampered(t *testing.T) {
	sessions := NewSessions(testSecret, time.Hour)

	token, err := sessions.Issue(padron.Account{ID: 1, Role: padron.RoleUser})
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = sessions.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = sessions.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = sessions.Verify("")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessions_Expired(t *testing.T) {
	sessions := NewSessions(testSecret, -time.Minute)

	token, err := sessions.Issue(padron.Account{ID: 1, Role: padron.RoleUser})
	require.NoError(t, err)

	_, err = sessions.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessions_InvalidSubject(t *testing.T) {
	sessions := NewSessions(testSecret, time.Hour)

	token, err := sessions.Issue(padron.Account{ID: 0, Role: padron.RoleUser})
	require.NoError(t, err)

	_, err = sessions.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
