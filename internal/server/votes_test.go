package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jokeboard/internal/models"
)

func decodeCounts(t *testing.T, w *httptest.ResponseRecorder) models.VoteCounts {
	t.Helper()
	var vc models.VoteCounts
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vc))
	return vc
}

func TestVoteToggleUndo(t *testing.T) {
	srv := newTestServer(t)
	cookie := registerAndLogin(t, srv, "alice", "pw123")
	addJoke(t, srv, cookie, "Why did the chicken cross the road?")

	w := doPostForm(srv, "/like/1", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.VoteCounts{Likes: 1, Dislikes: 0}, decodeCounts(t, w))

	// the same click again undoes the vote
	w = doPostForm(srv, "/like/1", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.VoteCounts{Likes: 0, Dislikes: 0}, decodeCounts(t, w))
}

func TestVoteSwitch(t *testing.T) {
	srv := newTestServer(t)
	cookie := registerAndLogin(t, srv, "alice", "pw123")
	addJoke(t, srv, cookie, "A joke about switching sides")

	w := doPostForm(srv, "/like/1", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doPostForm(srv, "/dislike/1", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.VoteCounts{Likes: 0, Dislikes: 1}, decodeCounts(t, w))
}

func TestVoteCountsAcrossUsers(t *testing.T) {
	srv := newTestServer(t)
	alice := registerAndLogin(t, srv, "alice", "pw123")
	bob := registerAndLogin(t, srv, "bob", "pw456")
	addJoke(t, srv, alice, "A joke two people disagree on")

	w := doPostForm(srv, "/like/1", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)

	w = doPostForm(srv, "/dislike/1", nil, bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.VoteCounts{Likes: 1, Dislikes: 1}, decodeCounts(t, w))
}

func TestVoteAnonymousUnauthorized(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/like/1", "/dislike/1"} {
		w := doPostForm(srv, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Contains(t, w.Body.String(), "Unauthorized")
	}
}

func TestVoteInvalidID(t *testing.T) {
	srv := newTestServer(t)
	cookie := registerAndLogin(t, srv, "alice", "pw123")

	w := doPostForm(srv, "/like/abc", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
