package server

import (
	"log/slog"
	"net/http"

	"jokeboard/internal/models"
)

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request, sess *models.SessionSnapshot) {
	sum, err := models.SummarizeVotes(s.DB)
	if err != nil {
		slog.Error("admin summary failed", "error", err)
		http.Error(w, "error loading admin dashboard", http.StatusInternalServerError)
		return
	}
	data := s.pageData(r)
	data["Summary"] = sum
	s.render(w, http.StatusOK, "admin", data)
}
