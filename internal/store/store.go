// ABOUTME: Store interfaces and data types for tabstash persistence
// ABOUTME: Defines User, Tab structs and the store interfaces for database operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when creating a user with a taken username
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when creating a user with a taken email
var ErrEmailExists = errors.New("email already exists")

// User represents a registered account. PasswordHash is a bcrypt hash and
// must never leave the server.
type User struct {
	ID           string
	Name         string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    time.Time
}

// Tab represents a saved browser tab owned by exactly one user.
// State is an opaque payload supplied by the extension.
type Tab struct {
	ID          string
	UserID      string
	URL         string
	Title       string
	Browser     string
	State       string
	FirstOpened time.Time
	LastOpened  time.Time
}

// UserStore defines the interface for account persistence
type UserStore interface {
	// CreateUser inserts a new user. Returns ErrUsernameExists or
	// ErrEmailExists when a uniqueness constraint is violated; no partial
	// write occurs in either case.
	CreateUser(ctx context.Context, user *User) error

	// GetUser retrieves a user by ID. Returns ErrNotFound when absent.
	GetUser(ctx context.Context, id string) (*User, error)

	// GetUserByUsername retrieves a user by username. Returns ErrNotFound
	// when absent.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// TouchLastLogin sets last_login to the current time.
	TouchLastLogin(ctx context.Context, id string) error
}

// TabStore defines the interface for owner-scoped tab persistence.
// Every operation filters by the owning user ID; a tab belonging to another
// user is never visible or mutable through these methods.
type TabStore interface {
	// CreateTab inserts a new tab record. Duplicate URLs for the same owner
	// are permitted and create distinct records.
	CreateTab(ctx context.Context, tab *Tab) error

	// TouchLastOpened sets last_opened to the current time on the record
	// matching (userID, url). When duplicates exist the most recently
	// opened record is updated. Returns ErrNotFound when nothing matches.
	TouchLastOpened(ctx context.Context, userID, url string) error

	// UpdateTabTitle sets the title on the record matching (userID, url),
	// with the same duplicate resolution as TouchLastOpened.
	UpdateTabTitle(ctx context.Context, userID, url, title string) error

	// ListTabs returns all tabs owned by userID, oldest first.
	ListTabs(ctx context.Context, userID string) ([]*Tab, error)

	// DeleteTab removes the record matching (userID, url), with the same
	// duplicate resolution as TouchLastOpened. Returns ErrNotFound when
	// nothing matches.
	DeleteTab(ctx context.Context, userID, url string) error
}

// Store combines all persistence interfaces
type Store interface {
	UserStore
	TabStore

	// Close closes the underlying database
	Close() error
}
