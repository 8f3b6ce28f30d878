// Package auth provides the credential and session lifecycle for tabstash.
//
// # Session Tokens
//
// Sessions are stateless HS256 JWTs signed with the configured secret:
//
//   - sub: user ID
//   - iat: mint time
//   - exp: mint time + 90 days
//
// Expiry is the only invalidation path. The service holds no session table,
// trading revocability for zero server-side session state.
//
// # Passwords
//
// Passwords are hashed with bcrypt at cost 12. Lookup misses burn a dummy
// comparison so invalid usernames and invalid passwords take the same time.
//
// # Access Gate
//
// RequireAuth wraps every owner-scoped endpoint. It extracts the bearer
// token, verifies signature and expiry, then re-resolves the subject against
// the user store. The two checks are deliberately decoupled so each is
// independently testable.
//
// # Revalidation
//
// Revalidate re-proves the holder's password and mints a fresh 90-day token.
// Subject extraction for revalidation verifies the signature but not the
// expiry, so a holder with a lapsed token can still refresh it by password.
package auth
