// ABOUTME: Tests for registration, login, revalidation, and profile handlers
// ABOUTME: Covers validation failures, conflicts, and token round-trips

package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabstash/tabstash/internal/auth"
)

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Ann",
		"username": "ann1",
		"password": "longenough1",
		"email":    "ann@x.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "User registered successfully")
}

func TestRegister_Validation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		body     map[string]string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "missing email",
			body:     map[string]string{"name": "Ann", "username": "ann1", "password": "longenough1"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "required",
		},
		{
			name:     "short password",
			body:     map[string]string{"name": "Ann", "username": "ann1", "password": "short12", "email": "ann@x.com"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "at least 8 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/auth/register", "", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
		})
	}
}

func TestRegister_Conflicts(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")

	// Same username, different email
	rec := ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Ann", "username": "ann1", "password": "longenough1", "email": "other@x.com",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")

	// Same email, different username
	rec = ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Ann", "username": "ann2", "password": "longenough1", "email": "ann@x.com",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")

	rec := ts.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "ann1",
		"password": "longenough1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.UserID)

	// Token subject matches the returned user ID
	issuer := ts.authSvc.Issuer()
	subject, err := issuer.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, subject)

	// tokenExpiration is a millisecond epoch ~90 days out
	wantMillis := time.Now().Add(auth.SessionTTL).UnixMilli()
	assert.InDelta(t, wantMillis, resp.TokenExpiration, float64(time.Minute.Milliseconds()))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")

	rec := ts.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "ann1", "password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "nobody", "password": "longenough1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRevalidate(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")
	token, userID := ts.login(t, "ann1", "longenough1")

	rec := ts.do(t, http.MethodPost, "/auth/revalidate", token, map[string]string{
		"password": "longenough1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	subject, err := ts.authSvc.Issuer().Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, subject)

	wantMillis := time.Now().Add(auth.SessionTTL).UnixMilli()
	assert.InDelta(t, wantMillis, resp.TokenExpiration, float64(time.Minute.Milliseconds()))
}

func TestRevalidate_ExpiredTokenStillAccepted(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")
	_, userID := ts.login(t, "ann1", "longenough1")

	// An expired token still identifies the subject; the password is the proof
	expired, _, err := ts.authSvc.Issuer().Generate(userID, -time.Hour)
	require.NoError(t, err)

	rec := ts.do(t, http.MethodPost, "/auth/revalidate", expired, map[string]string{
		"password": "longenough1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRevalidate_WrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")
	token, _ := ts.login(t, "ann1", "longenough1")

	rec := ts.do(t, http.MethodPost, "/auth/revalidate", token, map[string]string{
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid password")
}

func TestRevalidate_BadToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/auth/revalidate", "garbage-token", map[string]string{
		"password": "longenough1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUser(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")
	_, userID := ts.login(t, "ann1", "longenough1")

	rec := ts.do(t, http.MethodGet, "/auth/user/"+userID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.ID)
	assert.Equal(t, "Ann", resp.Name)
	assert.Equal(t, "ann1", resp.Username)
	assert.Equal(t, "ann@x.com", resp.Email)

	// created_at is ISO-8601
	_, err := time.Parse(time.RFC3339, resp.CreatedAt)
	assert.NoError(t, err)

	// The password hash must never appear in the response
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestGetUser_NotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/auth/user/missing-id", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
