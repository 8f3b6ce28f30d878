// ABOUTME: Tab persistence methods on SQLiteStore
// ABOUTME: All queries are scoped to the owning user ID

package store

import (
	"context"
	"fmt"
	"time"
)

// CreateTab inserts a new tab record.
func (s *SQLiteStore) CreateTab(ctx context.Context, tab *Tab) error {
	query := `
		INSERT INTO tabs (id, user_id, url, title, browser, state, first_opened, last_opened)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		tab.ID,
		tab.UserID,
		tab.URL,
		tab.Title,
		tab.Browser,
		tab.State,
		tab.FirstOpened.UTC().Format(time.RFC3339),
		tab.LastOpened.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting tab: %w", err)
	}

	s.logger.Debug("created tab", "id", tab.ID, "user_id", tab.UserID, "url", tab.URL)
	return nil
}

// TouchLastOpened sets last_opened to the current time on the matching record.
// Duplicates for the same (user, url) resolve to the most recently opened one.
func (s *SQLiteStore) TouchLastOpened(ctx context.Context, userID, url string) error {
	query := `
		UPDATE tabs SET last_opened = ?
		WHERE id = (
			SELECT id FROM tabs
			WHERE user_id = ? AND url = ?
			ORDER BY last_opened DESC, id DESC
			LIMIT 1
		)
	`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339), userID, url)
	if err != nil {
		return fmt.Errorf("updating last opened: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateTabTitle sets the title on the matching record, with the same
// duplicate resolution as TouchLastOpened.
func (s *SQLiteStore) UpdateTabTitle(ctx context.Context, userID, url, title string) error {
	query := `
		UPDATE tabs SET title = ?
		WHERE id = (
			SELECT id FROM tabs
			WHERE user_id = ? AND url = ?
			ORDER BY last_opened DESC, id DESC
			LIMIT 1
		)
	`

	result, err := s.db.ExecContext(ctx, query, title, userID, url)
	if err != nil {
		return fmt.Errorf("updating tab title: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// ListTabs returns all tabs owned by userID, oldest first.
func (s *SQLiteStore) ListTabs(ctx context.Context, userID string) ([]*Tab, error) {
	query := `
		SELECT id, user_id, url, title, browser, state, first_opened, last_opened
		FROM tabs
		WHERE user_id = ?
		ORDER BY first_opened ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying tabs: %w", err)
	}
	defer rows.Close()

	tabs := make([]*Tab, 0)
	for rows.Next() {
		var tab Tab
		var firstOpenedStr, lastOpenedStr string

		err := rows.Scan(
			&tab.ID,
			&tab.UserID,
			&tab.URL,
			&tab.Title,
			&tab.Browser,
			&tab.State,
			&firstOpenedStr,
			&lastOpenedStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning tab: %w", err)
		}

		tab.FirstOpened, err = time.Parse(time.RFC3339, firstOpenedStr)
		if err != nil {
			return nil, fmt.Errorf("parsing first_opened: %w", err)
		}
		tab.LastOpened, err = time.Parse(time.RFC3339, lastOpenedStr)
		if err != nil {
			return nil, fmt.Errorf("parsing last_opened: %w", err)
		}

		tabs = append(tabs, &tab)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tabs: %w", err)
	}

	return tabs, nil
}

// DeleteTab removes the matching record, with the same duplicate resolution
// as TouchLastOpened.
func (s *SQLiteStore) DeleteTab(ctx context.Context, userID, url string) error {
	query := `
		DELETE FROM tabs
		WHERE id = (
			SELECT id FROM tabs
			WHERE user_id = ? AND url = ?
			ORDER BY last_opened DESC, id DESC
			LIMIT 1
		)
	`

	result, err := s.db.ExecContext(ctx, query, userID, url)
	if err != nil {
		return fmt.Errorf("deleting tab: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted tab", "user_id", userID, "url", url)
	return nil
}
