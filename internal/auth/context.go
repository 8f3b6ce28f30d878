// ABOUTME: Request-context propagation of the authenticated user ID
// ABOUTME: Provides WithUserID/UserIDFromContext for handlers behind the gate

package auth

import (
	"context"
)

// userIDKey is the key type for storing the authenticated user ID in
// context.Context.
type userIDKey struct{}

// WithUserID returns a new context with the authenticated user ID attached.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext retrieves the authenticated user ID from the context,
// returning "" if not present.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
