// Package store provides persistent storage for tabstash using SQLite.
//
// # Architecture
//
// The package defines two narrow interfaces:
//
//   - UserStore: account persistence with unique username/email enforcement
//   - TabStore: tab records, every query scoped to the owning user
//
// SQLiteStore implements both in a single struct; callers depend on the
// interface they need so tests can substitute an in-memory store.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// The schema is created automatically on open. Timestamps are stored as
// RFC3339 strings in UTC.
//
// # Error Handling
//
// Common errors:
//
//   - ErrNotFound: requested entity does not exist
//   - ErrUsernameExists: username uniqueness violated on create
//   - ErrEmailExists: email uniqueness violated on create
//
// All methods accept context.Context for cancellation support.
//
// # Testing
//
// Use NewSQLiteStore(":memory:") for tests with a real SQLite database.
package store
