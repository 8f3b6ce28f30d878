// ABOUTME: Handlers for registration, login, revalidation, and public profiles
// ABOUTME: None of these routes sit behind the access gate

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tabstash/tabstash/internal/auth"
	"github.com/tabstash/tabstash/internal/store"
)

// RegisterRequest is the JSON request body for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// LoginRequest is the JSON request body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse is the JSON response for login and revalidation.
// TokenExpiration is a millisecond epoch so the extension can schedule its
// next revalidation.
type SessionResponse struct {
	Token           string `json:"token"`
	UserID          string `json:"user_id,omitempty"`
	TokenExpiration int64  `json:"tokenExpiration"`
}

// RevalidateRequest is the JSON request body for POST /auth/revalidate.
type RevalidateRequest struct {
	Password string `json:"password"`
}

// UserResponse is the public identity view: no password hash, timestamps as
// ISO-8601 strings.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	LastLogin string `json:"last_login"`
}

// handleRegister handles POST /auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := s.authSvc.Register(r.Context(), req.Name, req.Username, req.Password, req.Email)
	switch {
	case err == nil:
		writeMessage(w, http.StatusCreated, "User registered successfully")
	case errors.Is(err, auth.ErrFieldsRequired):
		writeMessage(w, http.StatusBadRequest, "Name, username, password, and email are required")
	case errors.Is(err, auth.ErrPasswordTooShort):
		writeMessage(w, http.StatusBadRequest, "Password must be at least 8 characters long")
	case errors.Is(err, store.ErrUsernameExists), errors.Is(err, store.ErrEmailExists):
		writeMessage(w, http.StatusConflict, "Username or email already exists")
	default:
		s.logger.Error("registration failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to register user")
	}
}

// handleLogin handles POST /auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := s.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		s.logger.Error("login failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{
		Token:           session.Token,
		UserID:          session.UserID,
		TokenExpiration: session.ExpiresAt.UnixMilli(),
	})
}

// handleRevalidate handles POST /auth/revalidate. The bearer token supplies
// the subject; its expiry is deliberately not re-checked here, because the
// holder re-proves their password to get the fresh token.
func (s *Server) handleRevalidate(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	userID, err := s.authSvc.Issuer().Subject(token)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid token!")
		return
	}

	var req RevalidateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := s.authSvc.Revalidate(r.Context(), userID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeMessage(w, http.StatusUnauthorized, "Invalid password")
		case errors.Is(err, store.ErrNotFound):
			writeMessage(w, http.StatusUnauthorized, "User not found!")
		default:
			s.logger.Error("revalidation failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to revalidate session")
		}
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{
		Token:           session.Token,
		TokenExpiration: session.ExpiresAt.UnixMilli(),
	})
}

// handleGetUser handles GET /auth/user/{id}.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		s.logger.Error("user lookup failed", "user_id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
		LastLogin: user.LastLogin.UTC().Format(time.RFC3339),
	})
}
