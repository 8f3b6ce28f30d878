// ABOUTME: HTTP middleware that gates owner-scoped endpoints behind a session token
// ABOUTME: Extracts the bearer token, verifies it, and resolves the subject user

package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tabstash/tabstash/internal/store"
)

// extractBearerToken extracts a bearer token from the Authorization header.
// A bare token without the "Bearer " prefix is accepted for compatibility
// with older extension builds.
func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingToken
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// RequireAuth creates an HTTP middleware that validates the session token
// and resolves it to a live user before the wrapped handler runs. Token
// verification and user lookup are separate steps: a valid token whose
// subject no longer exists is rejected.
func RequireAuth(users store.UserStore, issuer *TokenIssuer, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractBearerToken(r.Header.Get("Authorization"))
			if err != nil {
				writeAuthError(w, "Authentication required!")
				return
			}

			userID, err := issuer.Verify(token)
			if err != nil {
				if errors.Is(err, ErrExpiredToken) {
					logger.Debug("rejected expired token")
					writeAuthError(w, "Token has expired!")
					return
				}
				logger.Debug("rejected invalid token", "error", err)
				writeAuthError(w, "Invalid token!")
				return
			}

			if _, err := users.GetUser(r.Context(), userID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeAuthError(w, "User not found!")
					return
				}
				logger.Error("user lookup failed", "user_id", userID, "error", err)
				writeAuthError(w, "Token error!")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// writeAuthError writes a 401 with the client-facing message envelope.
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"` + message + `"}`))
}
