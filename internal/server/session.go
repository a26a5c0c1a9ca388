package server

import (
	"net/http"
	"strings"
	"time"
	"unicode"

	"jokeboard/internal/models"
)

// currentSession resolves the session cookie to an immutable snapshot of the
// authenticated user, or nil for anonymous requests. Expired and revoked
// sessions resolve to anonymous.
func (s *Server) currentSession(r *http.Request) *models.SessionSnapshot {
	cookie, err := r.Cookie(s.CookieName)
	if err != nil {
		return nil
	}
	sess, err := models.GetSession(s.DB, cookie.Value)
	if err != nil || sess.RevokedAt != nil || sess.ExpiresAt.Before(time.Now()) {
		return nil
	}
	user, err := models.GetUserByID(s.DB, sess.UserID)
	if err != nil {
		return nil
	}
	return &models.SessionSnapshot{
		UserID:   user.ID,
		Role:     user.Role,
		Username: user.Username,
		Avatar:   avatarInitials(user.Username),
	}
}

func avatarInitials(username string) string {
	var b strings.Builder
	for _, part := range strings.Fields(username) {
		b.WriteRune(unicode.ToUpper([]rune(part)[0]))
	}
	return b.String()
}
