// ABOUTME: JWT session token minting and verification for API requests
// ABOUTME: Uses HS256 signing with configurable secret and a 90-day lifetime

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the lifetime of a minted session token. Expiry is the only
// invalidation path; there is no server-side revocation.
const SessionTTL = 90 * 24 * time.Hour

// MinSecretLength is the minimum signing secret length in bytes.
const MinSecretLength = 32

// Token errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrMissingToken  = errors.New("missing token")
	ErrMissingClaim  = errors.New("missing required claim")
	ErrSecretTooWeak = errors.New("signing secret too short")
)

// TokenIssuer mints and verifies HS256 signed session tokens.
// Tokens are stateless and self-verifying; verification never touches the
// store, so callers must re-resolve the subject themselves.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates a token issuer with the given signing secret.
// The secret must be at least MinSecretLength bytes.
func NewTokenIssuer(secret []byte) (*TokenIssuer, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrSecretTooWeak, MinSecretLength, len(secret))
	}
	return &TokenIssuer{secret: secret}, nil
}

// Mint creates a session token for the given user ID with the standard
// 90-day lifetime. The expiration instant is returned for client-side
// scheduling.
func (i *TokenIssuer) Mint(userID string) (string, time.Time, error) {
	return i.Generate(userID, SessionTTL)
}

// Generate creates a session token for the given user ID with an explicit
// lifetime. Negative lifetimes produce already-expired tokens, which is
// useful in tests.
func (i *TokenIssuer) Generate(userID string, expiresIn time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiresIn)

	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify validates the token signature and expiration and extracts the user
// ID from the "sub" claim. It does not check that the user still exists.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrMissingToken
	}

	token, err := jwt.Parse(tokenString, i.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	return subjectClaim(token)
}

// Subject extracts the user ID from a token after verifying only the
// signature, not the expiration. Used by revalidation, where the holder
// re-proves their password and receives a fresh token regardless of whether
// the old one has lapsed.
func (i *TokenIssuer) Subject(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrMissingToken
	}

	token, err := jwt.Parse(tokenString, i.keyFunc, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	return subjectClaim(token)
}

// keyFunc returns the signing secret after validating the signing method.
func (i *TokenIssuer) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return i.secret, nil
}

// subjectClaim extracts the "sub" claim from a parsed token.
func subjectClaim(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("%w: sub", ErrMissingClaim)
	}

	return sub, nil
}
