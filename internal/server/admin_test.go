package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jokeboard/internal/models"
)

func TestAdminForbiddenForAnonymous(t *testing.T) {
	srv := newTestServer(t)
	w := doGet(srv, "/admin", nil)

	// 403, never a redirect
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestAdminForbiddenForRegularUser(t *testing.T) {
	srv := newTestServer(t)
	cookie := registerAndLogin(t, srv, "alice", "pw123")

	w := doGet(srv, "/admin", cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestAdminDashboard(t *testing.T) {
	srv := newTestServer(t)
	alice := registerAndLogin(t, srv, "alice", "pw123")
	addJoke(t, srv, alice, "A joke alice likes")
	require.Equal(t, http.StatusOK, doPostForm(srv, "/like/1", nil, alice).Code)

	admin := login(t, srv, testAdminUser, testAdminPass)
	w := doGet(srv, "/admin", admin)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	// bootstrap admin + alice
	assert.Contains(t, body, "Users: 2")
	assert.Contains(t, body, "Jokes: 1")
	assert.Contains(t, body, "A joke alice likes")
	assert.Contains(t, body, "alice")
}

func TestDeleteRequiresAdmin(t *testing.T) {
	srv := newTestServer(t)
	alice := registerAndLogin(t, srv, "alice", "pw123")
	addJoke(t, srv, alice, "A deletable joke")

	w := doPostForm(srv, "/delete/1", nil, alice)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doPostForm(srv, "/delete/1", nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminDeletesJoke(t *testing.T) {
	srv := newTestServer(t)
	alice := registerAndLogin(t, srv, "alice", "pw123")
	addJoke(t, srv, alice, "A joke that will not survive")

	admin := login(t, srv, testAdminUser, testAdminPass)
	w := doPostForm(srv, "/delete/1", nil, admin)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = doGet(srv, "/api/jokes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var jokes []models.Joke
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &jokes))
	assert.Empty(t, jokes)
}
