package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jokeboard/internal/models"
)

// sessionTTL bounds how long a session row stays valid server-side; the
// cookie itself lives only for the browser session.
const sessionTTL = 24 * time.Hour

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "register", s.pageData(r))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		data := s.pageData(r)
		data["Error"] = "Username and password are required"
		s.render(w, http.StatusBadRequest, "register", data)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("hash password failed", "error", err)
		http.Error(w, "could not create account", http.StatusInternalServerError)
		return
	}
	err = models.CreateUser(s.DB, username, string(hash), models.RoleUser)
	if errors.Is(err, models.ErrDuplicateUsername) {
		data := s.pageData(r)
		data["Error"] = "Username already taken"
		s.render(w, http.StatusBadRequest, "register", data)
		return
	}
	if err != nil {
		slog.Error("create user failed", "error", err)
		http.Error(w, "could not create account", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login", s.pageData(r))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := models.Authenticate(s.DB, username, password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		s.renderLoginError(w, r)
		return
	}
	if err != nil {
		slog.Error("authenticate failed", "error", err)
		http.Error(w, "error logging in", http.StatusInternalServerError)
		return
	}

	sid := uuid.NewString()
	if err := models.CreateSession(s.DB, user.ID, sid, time.Now().Add(sessionTTL)); err != nil {
		slog.Error("create session failed", "error", err)
		http.Error(w, "could not create session", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: s.CookieName, Value: sid, Path: "/", HttpOnly: true})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// invalid credentials re-render the form, never redirect
func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request) {
	data := s.pageData(r)
	data["Error"] = "Invalid username or password"
	s.render(w, http.StatusUnauthorized, "login", data)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.CookieName); err == nil {
		if err := models.RevokeSession(s.DB, cookie.Value); err != nil {
			// revocation failure still logs the user out of this browser
			slog.Error("revoke session failed", "error", err)
		}
		http.SetCookie(w, &http.Cookie{Name: s.CookieName, Path: "/", MaxAge: -1, HttpOnly: true})
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
