package server

import (
	"database/sql"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"jokeboard/internal/models"
)

type Server struct {
	DB *sql.DB

	tmpl map[string]*template.Template

	CookieName string
}

func New(db *sql.DB, templateDir string) (*Server, error) {
	templates := map[string]*template.Template{}
	layout := filepath.Join(templateDir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}
		t, err := template.ParseFiles(layout, page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		templates[name] = t
	}
	return &Server{DB: db, tmpl: templates, CookieName: "session_id"}, nil
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/category/{name}", s.handleCategory).Methods(http.MethodGet)
	r.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/random", s.handleRandom).Methods(http.MethodGet)

	r.HandleFunc("/api/jokes", s.handleAPIJokes).Methods(http.MethodGet)
	r.HandleFunc("/api/jokes/random", s.handleAPIRandomJoke).Methods(http.MethodGet)

	r.HandleFunc("/add", s.requireAuth(s.handleAddForm)).Methods(http.MethodGet)
	r.HandleFunc("/add", s.requireAuth(s.handleAddJoke)).Methods(http.MethodPost)
	r.HandleFunc("/like/{id}", s.handleLike).Methods(http.MethodPost)
	r.HandleFunc("/dislike/{id}", s.handleDislike).Methods(http.MethodPost)
	r.HandleFunc("/delete/{id}", s.requireAdmin(s.handleDeleteJoke)).Methods(http.MethodPost)

	r.HandleFunc("/login", s.handleLoginForm).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/register", s.handleRegisterForm).Methods(http.MethodGet)
	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	r.HandleFunc("/admin", s.requireAdmin(s.handleAdmin)).Methods(http.MethodGet)

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.routes().ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data map[string]any) {
	t, ok := s.tmpl[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("render failed", "template", name, "error", err)
	}
}

// pageData is the base template payload: the session snapshot plus the
// category list shown in the nav on every page.
func (s *Server) pageData(r *http.Request) map[string]any {
	data := map[string]any{"Session": s.currentSession(r)}
	cats, err := models.ListCategories(s.DB)
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}
	data["Categories"] = cats
	return data
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json failed", "error", err)
	}
}

func (s *Server) jsonError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

type authedHandler func(http.ResponseWriter, *http.Request, *models.SessionSnapshot)

// requireAuth redirects anonymous requests to the login page.
func (s *Server) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.currentSession(r)
		if sess == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r, sess)
	}
}

// requireAdmin terminates with 403 for anyone without the admin role. Unlike
// requireAuth it never redirects.
func (s *Server) requireAdmin(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.currentSession(r)
		if !sess.IsAdmin() {
			http.Error(w, "Forbidden: Admins only", http.StatusForbidden)
			return
		}
		next(w, r, sess)
	}
}
