package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"padron/internal/padron"
)

// SessionCookie is the name of the authentication cookie.
const SessionCookie = "padron_session"

// ErrInvalidSession is returned for missing, expired, tampered or otherwise
// unusable session tokens.
var ErrInvalidSession = errors.New("invalid session")

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies signed session tokens. Tokens are stateless
// HS256 JWTs carrying the account id; no server-side session state exists.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

// NewSessions creates a Sessions signer with the given shared secret and
// token lifetime.
func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *Sessions) TTL() time.Duration { return s.ttl }

// Issue signs a session token for the account.
func (s *Sessions) Issue(acc padron.Account) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: acc.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(acc.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify validates a session token and returns the account id it carries.
func (s *Sessions) Verify(raw string) (int64, error) {
	token, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidSession
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok {
		return 0, ErrInvalidSession
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidSession
	}
	return id, nil
}
