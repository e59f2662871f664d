package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todolistapp/todolist-server/internal/auth"
	"github.com/todolistapp/todolist-server/internal/service"
	"github.com/todolistapp/todolist-server/internal/store"
)

const (
	testSalt   = "pepper"
	testKeyHex = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"
)

// testServer wraps the API server for endpoint tests.
type testServer struct {
	*Server
	api humatest.TestAPI
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	tokens, err := auth.NewTokenService(testKeyHex, "todolist-test")
	require.NoError(t, err)

	services := &Services{
		Auth: service.NewAuthService(st, tokens, testSalt, logger),
		Tag:  service.NewTagService(st, logger),
		Item: service.NewItemService(st, logger),
	}

	s := NewServer(services, tokens, "http://localhost:3000", logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

// registerAndLogin creates a user and returns a bearer token.
func (ts *testServer) registerAndLogin(t *testing.T, username string) string {
	t.Helper()

	resp := ts.api.Post("/api/auth/register", map[string]any{
		"username": username,
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.Code, "register failed: %s", resp.Body.String())

	resp = ts.api.Post("/api/auth/login", map[string]any{
		"username": username,
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	var body LoginResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestLoginAndCurrentUser(t *testing.T) {
	ts := newTestServer(t)

	token := ts.registerAndLogin(t, "alice")

	resp := ts.api.Get("/api/auth/currentUser", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	var body CurrentUserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, "alice", body.Username)
	assert.False(t, body.CreateDate.IsZero())
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.registerAndLogin(t, "alice")

	resp := ts.api.Post("/api/auth/login", map[string]any{
		"username": "alice",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "VALIDATION", apiErr.Code)
	assert.Contains(t, resp.Body.String(), "Invalid Email Or Password")
}

func TestAuthGate(t *testing.T) {
	ts := newTestServer(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/currentUser"},
		{http.MethodGet, "/api/tags"},
		{http.MethodPost, "/api/tags"},
		{http.MethodPut, "/api/tags"},
		{http.MethodDelete, "/api/tags/tag_x"},
		{http.MethodPost, "/api/toDoListItems"},
		{http.MethodPut, "/api/toDoListItems"},
		{http.MethodDelete, "/api/toDoListItems/item_x"},
		{http.MethodPost, "/api/toDoListItems/query"},
	}
	for _, ep := range protected {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			var resp *httptest.ResponseRecorder
			switch ep.method {
			case http.MethodGet:
				resp = ts.api.Get(ep.path)
			case http.MethodPost:
				resp = ts.api.Post(ep.path, map[string]any{})
			case http.MethodPut:
				resp = ts.api.Put(ep.path, map[string]any{})
			case http.MethodDelete:
				resp = ts.api.Delete(ep.path)
			}
			assert.Equal(t, http.StatusUnauthorized, resp.Code)
		})
	}
}

func TestAuthGate_RejectsGarbageToken(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Get("/api/auth/currentUser", "Authorization: Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "healthy")
}
