// ABOUTME: Password hashing and verification using bcrypt
// ABOUTME: Keeps the miss path timing-equivalent to a real comparison

package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt cost factor for new password hashes.
const HashCost = 12

// dummyHash is compared against when the username lookup misses, so the
// miss path costs the same as a wrong password. This prevents timing attacks
// that could enumerate valid usernames.
const dummyHash = "$2a$12$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// burnVerification performs a dummy bcrypt comparison to maintain constant
// timing on code paths where no real hash is available.
func burnVerification(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
