// ABOUTME: Handlers for owner-scoped tab operations
// ABOUTME: Every route here sits behind the access gate; the user ID comes from context

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tabstash/tabstash/internal/auth"
	"github.com/tabstash/tabstash/internal/store"
)

// SaveTabRequest is the JSON request body for POST /save_tab.
// Pointer fields distinguish absent keys from empty values; all four keys
// must be present.
type SaveTabRequest struct {
	URL     *string `json:"url"`
	Title   *string `json:"title"`
	Browser *string `json:"browser"`
	State   *string `json:"state"`
}

// UpdateLastOpenedRequest is the JSON request body for
// POST /save_tab/update_last_opened.
type UpdateLastOpenedRequest struct {
	URL string `json:"url"`
}

// UpdateTitleRequest is the JSON request body for PUT /update_tab_title.
type UpdateTitleRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// DeleteTabRequest is the JSON request body for DELETE /delete_tab.
type DeleteTabRequest struct {
	URL string `json:"url"`
}

// TabResponse is a single tab in the GET /get_tabs response. ID and owner
// are rendered as strings for client consumption.
type TabResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Browser     string `json:"browser"`
	State       string `json:"state"`
	FirstOpened string `json:"first_opened"`
	LastOpened  string `json:"last_opened"`
}

// handleSaveTab handles POST /save_tab.
func (s *Server) handleSaveTab(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req SaveTabRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.URL == nil || req.Title == nil || req.Browser == nil || req.State == nil {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	now := time.Now().UTC()
	tab := &store.Tab{
		ID:          uuid.NewString(),
		UserID:      userID,
		URL:         *req.URL,
		Title:       *req.Title,
		Browser:     *req.Browser,
		State:       *req.State,
		FirstOpened: now,
		LastOpened:  now,
	}

	if err := s.store.CreateTab(r.Context(), tab); err != nil {
		s.logger.Error("failed to save tab", "user_id", userID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to save tab data")
		return
	}

	writeMessage(w, http.StatusCreated, "Tab saved successfully!")
}

// handleUpdateLastOpened handles POST /save_tab/update_last_opened.
func (s *Server) handleUpdateLastOpened(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req UpdateLastOpenedRequest
	if err := decodeJSON(r, &req); err != nil || req.URL == "" {
		writeMessage(w, http.StatusBadRequest, "URL is required")
		return
	}

	if err := s.store.TouchLastOpened(r.Context(), userID, req.URL); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Tab not found")
			return
		}
		s.logger.Error("failed to update last opened", "user_id", userID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to update last opened time")
		return
	}

	writeMessage(w, http.StatusOK, "Last opened time updated successfully")
}

// handleUpdateTabTitle handles PUT /update_tab_title.
func (s *Server) handleUpdateTabTitle(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req UpdateTitleRequest
	if err := decodeJSON(r, &req); err != nil || req.URL == "" || req.Title == "" {
		writeMessage(w, http.StatusBadRequest, "URL and title are required")
		return
	}

	if err := s.store.UpdateTabTitle(r.Context(), userID, req.URL, req.Title); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Tab not found")
			return
		}
		s.logger.Error("failed to update tab title", "user_id", userID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to update tab title")
		return
	}

	writeMessage(w, http.StatusOK, "Tab title updated successfully")
}

// handleGetTabs handles GET /get_tabs.
func (s *Server) handleGetTabs(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	tabs, err := s.store.ListTabs(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to list tabs", "user_id", userID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve tab data")
		return
	}

	response := make([]TabResponse, 0, len(tabs))
	for _, tab := range tabs {
		response = append(response, TabResponse{
			ID:          tab.ID,
			UserID:      tab.UserID,
			URL:         tab.URL,
			Title:       tab.Title,
			Browser:     tab.Browser,
			State:       tab.State,
			FirstOpened: tab.FirstOpened.UTC().Format(time.RFC3339),
			LastOpened:  tab.LastOpened.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// handleDeleteTab handles DELETE /delete_tab.
func (s *Server) handleDeleteTab(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req DeleteTabRequest
	if err := decodeJSON(r, &req); err != nil || req.URL == "" {
		writeMessage(w, http.StatusBadRequest, "URL is required")
		return
	}

	if err := s.store.DeleteTab(r.Context(), userID, req.URL); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Tab not found")
			return
		}
		s.logger.Error("failed to delete tab", "user_id", userID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete tab")
		return
	}

	writeMessage(w, http.StatusOK, "Tab deleted successfully")
}
