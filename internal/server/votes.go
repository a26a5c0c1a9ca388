package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jokeboard/internal/models"
)

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	s.toggleVote(w, r, models.VoteLike)
}

func (s *Server) handleDislike(w http.ResponseWriter, r *http.Request) {
	s.toggleVote(w, r, models.VoteDislike)
}

// toggleVote runs one click of the vote protocol and answers with the
// recomputed counts as JSON. Anonymous requests get 401 JSON, not a redirect.
func (s *Server) toggleVote(w http.ResponseWriter, r *http.Request, voteType string) {
	sess := s.currentSession(r)
	if sess == nil {
		s.jsonError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		s.jsonError(w, http.StatusBadRequest, "invalid joke id")
		return
	}
	counts, err := models.ToggleVote(s.DB, id, sess.UserID, voteType)
	if err != nil {
		slog.Error("toggle vote failed", "joke_id", id, "user_id", sess.UserID, "error", err)
		s.jsonError(w, http.StatusInternalServerError, "Server error")
		return
	}
	s.writeJSON(w, http.StatusOK, counts)
}
