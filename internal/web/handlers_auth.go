package web

import (
	"errors"
	"net/http"

	"padron/internal/auth"
	"padron/internal/logging"
)

type loginData struct {
	Error string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "login.html", loginData{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	acc, err := s.accounts.Authenticate(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Same message for unknown email and wrong password.
			renderPage(w, http.StatusUnauthorized, "login.html", loginData{Error: "Credenciales incorrectas"})
			return
		}
		logging.FromContext(r.Context()).Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	token, err := s.sessions.Issue(acc)
	if err != nil {
		logging.FromContext(r.Context()).Error("issue session", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	s.setSessionCookie(w, token)
	http.Redirect(w, r, "/padron", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleSeedUsers(w http.ResponseWriter, r *http.Request) {
	res, err := s.accounts.Seed(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("seed users", "error", err)
		writeError(w, http.StatusInternalServerError, "seeding failed")
		return
	}

	logging.FromContext(r.Context()).Info("seeded users",
		"created", len(res.Created),
		"skipped", len(res.Skipped),
	)
	writeJSON(w, res)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "dashboard.html", struct {
		User string
	}{User: accountFrom(r.Context()).Email})
}
