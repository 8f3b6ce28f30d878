// ABOUTME: Shared test harness for API handler tests
// ABOUTME: Builds a server over an in-memory store with a fixed signing secret

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tabstash/tabstash/internal/auth"
	"github.com/tabstash/tabstash/internal/store"
)

var testSecret = []byte("api-handler-test-secret-32-bytes")

type testServer struct {
	*Server
	router http.Handler
	store  *store.SQLiteStore
}

func newTestServer(t *testing.T, opts ...Option) *testServer {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	issuer, err := auth.NewTokenIssuer(testSecret)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authSvc := auth.NewService(s, issuer, logger)

	opts = append([]Option{WithLogger(logger)}, opts...)
	srv := New(s, authSvc, opts...)

	return &testServer{
		Server: srv,
		router: srv.Router(),
		store:  s,
	}
}

// do performs a JSON request against the router and returns the recorder.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns nothing; fails the test on error.
func (ts *testServer) register(t *testing.T, name, username, password, email string) {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     name,
		"username": username,
		"password": password,
		"email":    email,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "register: %s", rec.Body.String())
}

// login authenticates and returns the session token and user ID.
func (ts *testServer) login(t *testing.T, username, password string) (token, userID string) {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, "login: %s", rec.Body.String())

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token, resp.UserID
}
