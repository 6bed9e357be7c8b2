package web

import (
	"context"
	"net/http"
	"strings"

	"padron/internal/auth"
	"padron/internal/padron"
)

type contextKey string

const accountKey contextKey = "account"

// requireUser resolves the session cookie to an account and stores it in the
// request context. Browsers are redirected to the login page; API callers
// get a 401.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acc, err := s.currentAccount(r)
		if err != nil {
			if isAPIRequest(r) {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), accountKey, acc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects non-admin accounts. Must run after requireUser.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !accountFrom(r.Context()).IsAdmin() {
			if isAPIRequest(r) {
				writeError(w, http.StatusForbidden, "admin role required")
				return
			}
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) currentAccount(r *http.Request) (padron.Account, error) {
	cookie, err := r.Cookie(auth.SessionCookie)
	if err != nil {
		return padron.Account{}, auth.ErrInvalidSession
	}

	id, err := s.sessions.Verify(cookie.Value)
	if err != nil {
		return padron.Account{}, err
	}

	// The account must still exist; a stale token for a removed account is
	// treated like no session at all.
	return s.store.FindAccountByID(r.Context(), id)
}

// accountFrom returns the authenticated account stored by requireUser, or
// the zero Account when absent.
func accountFrom(ctx context.Context) padron.Account {
	acc, _ := ctx.Value(accountKey).(padron.Account)
	return acc
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
