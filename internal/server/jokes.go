package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jokeboard/internal/models"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderJokeList(w, r, models.JokeFilter{})
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	s.renderJokeList(w, r, models.JokeFilter{Category: mux.Vars(r)["name"]})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.renderJokeList(w, r, models.JokeFilter{Query: q.Get("q"), Category: q.Get("category")})
}

func (s *Server) renderJokeList(w http.ResponseWriter, r *http.Request, f models.JokeFilter) {
	jokes, err := models.ListJokes(s.DB, f)
	if err != nil {
		slog.Error("list jokes failed", "error", err)
		http.Error(w, "error loading jokes", http.StatusInternalServerError)
		return
	}
	data := s.pageData(r)
	data["Jokes"] = jokes
	data["ActiveCategory"] = f.Category
	data["SearchQuery"] = f.Query
	s.render(w, http.StatusOK, "index", data)
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	data := s.pageData(r)
	joke, err := models.RandomJoke(s.DB)
	switch {
	case errors.Is(err, models.ErrNoJokes):
		// the empty set is not an error for this page
	case err != nil:
		slog.Error("random joke failed", "error", err)
		http.Error(w, "error fetching random joke", http.StatusInternalServerError)
		return
	default:
		data["Joke"] = joke
	}
	s.render(w, http.StatusOK, "random", data)
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request, sess *models.SessionSnapshot) {
	s.render(w, http.StatusOK, "add", s.pageData(r))
}

func (s *Server) handleAddJoke(w http.ResponseWriter, r *http.Request, sess *models.SessionSnapshot) {
	text := r.FormValue("joke")
	categoryID, _ := strconv.Atoi(r.FormValue("category_id"))
	if text == "" || categoryID == 0 {
		data := s.pageData(r)
		data["Error"] = "Please enter a joke and select a category"
		data["JokeText"] = text
		s.render(w, http.StatusBadRequest, "add", data)
		return
	}
	if _, err := models.CreateJoke(s.DB, text, categoryID); err != nil {
		slog.Error("create joke failed", "error", err)
		data := s.pageData(r)
		data["Error"] = "Could not save the joke"
		data["JokeText"] = text
		s.render(w, http.StatusInternalServerError, "add", data)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteJoke(w http.ResponseWriter, r *http.Request, sess *models.SessionSnapshot) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}
	if err := models.DeleteJoke(s.DB, id); err != nil {
		slog.Error("delete joke failed", "joke_id", id, "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAPIJokes(w http.ResponseWriter, r *http.Request) {
	jokes, err := models.ListJokes(s.DB, models.JokeFilter{})
	if err != nil {
		slog.Error("list jokes failed", "error", err)
		s.jsonError(w, http.StatusInternalServerError, "Error fetching jokes")
		return
	}
	if jokes == nil {
		jokes = []models.Joke{}
	}
	s.writeJSON(w, http.StatusOK, jokes)
}

func (s *Server) handleAPIRandomJoke(w http.ResponseWriter, r *http.Request) {
	joke, err := models.RandomJoke(s.DB)
	if errors.Is(err, models.ErrNoJokes) {
		s.jsonError(w, http.StatusNotFound, "No jokes available")
		return
	}
	if err != nil {
		slog.Error("random joke failed", "error", err)
		s.jsonError(w, http.StatusInternalServerError, "Failed to fetch random joke")
		return
	}
	s.writeJSON(w, http.StatusOK, joke)
}
