package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	Token    string `json:"token"`
	User     *struct {
		Username string `json:"username"`
	} `json:"user"`
}

func TestLogin(t *testing.T) {
	_, app := newTestServer(t)
	registerUser(t, app, "alice")

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{"success", LoginRequest{Username: "alice", Password: testPassword}, http.StatusOK},
		{"wrong password", LoginRequest{Username: "alice", Password: "Wrong123!"}, http.StatusUnauthorized},
		{"unknown user", LoginRequest{Username: "ghost", Password: testPassword}, http.StatusUnauthorized},
		{"missing password", LoginRequest{Username: "alice"}, http.StatusBadRequest},
		{"no body", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(t, app, http.MethodPost, "/api/login", tt.body, "", nil)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestLoginStatusAndLogout(t *testing.T) {
	_, app := newTestServer(t)
	registerUser(t, app, "alice")

	var status loginResponse
	resp := call(t, app, http.MethodGet, "/api/login", nil, "", &status)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, status.LoggedIn)
	assert.Nil(t, status.User)

	cookie := loginUser(t, app, "alice")

	status = loginResponse{}
	call(t, app, http.MethodGet, "/api/login", nil, cookie, &status)
	assert.True(t, status.LoggedIn)
	require.NotNil(t, status.User)
	assert.Equal(t, "alice", status.User.Username)

	resp = call(t, app, http.MethodGet, "/api/profile", nil, cookie, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/login", nil, cookie, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/profile", nil, cookie, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Logging out without a session is still fine
	resp = call(t, app, http.MethodDelete, "/api/login", nil, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBearerTokenIsRevokedByLogout(t *testing.T) {
	_, app := newTestServer(t)
	registerUser(t, app, "alice")

	var login loginResponse
	resp := call(t, app, http.MethodPost, "/api/login", LoginRequest{Username: "alice", Password: testPassword}, "", &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, login.Token)

	bearer := func(method, path string) int {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+login.Token)
		r, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = r.Body.Close() }()
		return r.StatusCode
	}

	assert.Equal(t, http.StatusOK, bearer(http.MethodGet, "/api/profile"))
	assert.Equal(t, http.StatusOK, bearer(http.MethodDelete, "/api/login"))
	assert.Equal(t, http.StatusUnauthorized, bearer(http.MethodGet, "/api/profile"))
}

func TestBearerTokenRejectsGarbage(t *testing.T) {
	_, app := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
