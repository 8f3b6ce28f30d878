// ABOUTME: Tests for owner-scoped tab handlers
// ABOUTME: Covers validation, not-found outcomes, cross-user isolation, and the full flow

package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveTabBody(url, title string) map[string]string {
	return map[string]string{
		"url":     url,
		"title":   title,
		"browser": "chrome",
		"state":   "{}",
	}
}

func (ts *testServer) listTabs(t *testing.T, token string) []TabResponse {
	t.Helper()

	rec := ts.do(t, http.MethodGet, "/get_tabs", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, "get_tabs: %s", rec.Body.String())

	var tabs []TabResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tabs))
	return tabs
}

func TestSaveTab(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")
	token, userID := ts.login(t, "ann1", "longenough1")

	rec := ts.do(t, http.MethodPost, "/save_tab", token, saveTabBody("http://a", "A"))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tab saved successfully!")

	// Round-trip: the saved record comes back exactly
	tabs := ts.listTabs(t, token)
	require.Len(t, tabs, 1)
	assert.Equal(t, "http://a", tabs[0].URL)
	assert.Equal(t, "A", tabs[0].Title)
	assert.Equal(t, "chrome", tabs[0].Browser)
	assert.Equal(t, "{}", tabs[0].State)
	assert.Equal(t, userID, tabs[0].UserID)
	assert.NotEmpty(t, tabs[0].ID)
}

func TestSaveTab_MissingFields(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")
	token, _ := ts.login(t, "ann1", "longenough1")

	rec := ts.do(t, http.MethodPost, "/save_tab", token, map[string]string{
		"url":   "http://a",
		"title": "A",
		// browser and state absent
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing required fields")
}

func TestSaveTab_RequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/save_tab", "", saveTabBody("http://a", "A"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication required!")
}

func TestUpdateLastOpened(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")
	token, _ := ts.login(t, "ann1", "longenough1")

	ts.do(t, http.MethodPost, "/save_tab", token, saveTabBody("http://a", "A"))

	rec := ts.do(t, http.MethodPost, "/save_tab/update_last_opened", token, map[string]string{
		"url": "http://a",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Last opened time updated successfully")
}

func TestUpdateLastOpened_NotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")
	token, _ := ts.login(t, "ann1", "longenough1")

	rec := ts.do(t, http.MethodPost, "/save_tab/update_last_opened", token, map[string]string{
		"url": "http://missing",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tab not found")

	// Nothing was created as a side effect
	assert.Empty(t, ts.listTabs(t, token))
}

func TestUpdateLastOpened_MissingURL(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")
	token, _ := ts.login(t, "ann1", "longenough1")

	rec := ts.do(t, http.MethodPost, "/save_tab/update_last_opened", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "URL is required")
}

func TestUpdateTabTitle(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")
	token, _ := ts.login(t, "ann1", "longenough1")

	ts.do(t, http.MethodPost, "/save_tab", token, saveTabBody("http://a", "A"))

	rec := ts.do(t, http.MethodPut, "/update_tab_title", token, map[string]string{
		"url":   "http://a",
		"title": "Renamed",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	tabs := ts.listTabs(t, token)
	require.Len(t, tabs, 1)
	assert.Equal(t, "Renamed", tabs[0].Title)
}

func TestUpdateTabTitle_NotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")
	token, _ := ts.login(t, "ann1", "longenough1")

	rec := ts.do(t, http.MethodPut, "/update_tab_title", token, map[string]string{
		"url": "http://missing", "title": "T",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTab(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")
	token, _ := ts.login(t, "ann1", "longenough1")

	ts.do(t, http.MethodPost, "/save_tab", token, saveTabBody("http://a", "A"))

	rec := ts.do(t, http.MethodDelete, "/delete_tab", token, map[string]string{"url": "http://a"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tab deleted successfully")

	// A second delete reports not found
	rec = ts.do(t, http.MethodDelete, "/delete_tab", token, map[string]string{"url": "http://a"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTabs_CrossUserIsolation(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")
	ts.register(t, "Bob", "bob1", "longenough2", "bob@x.com")
	annToken, _ := ts.login(t, "ann1", "longenough1")
	bobToken, _ := ts.login(t, "bob1", "longenough2")

	// Ann saves a tab; Bob saves one with the same URL
	ts.do(t, http.MethodPost, "/save_tab", annToken, saveTabBody("http://shared", "Ann's"))
	ts.do(t, http.MethodPost, "/save_tab", bobToken, saveTabBody("http://shared", "Bob's"))

	// Each user sees only their own record
	annTabs := ts.listTabs(t, annToken)
	require.Len(t, annTabs, 1)
	assert.Equal(t, "Ann's", annTabs[0].Title)

	// Bob cannot rename Ann's tab through his own token; only his changes
	rec := ts.do(t, http.MethodPut, "/update_tab_title", bobToken, map[string]string{
		"url": "http://shared", "title": "Hijacked",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	annTabs = ts.listTabs(t, annToken)
	assert.Equal(t, "Ann's", annTabs[0].Title)

	// Bob deletes his record; Ann's survives
	rec = ts.do(t, http.MethodDelete, "/delete_tab", bobToken, map[string]string{"url": "http://shared"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, ts.listTabs(t, annToken), 1)
	assert.Empty(t, ts.listTabs(t, bobToken))
}

func TestFullScenario(t *testing.T) {
	ts := newTestServer(t)

	// register -> 201
	ts.register(t, "Ann", "ann1", "longenough1", "ann@x.com")

	// login -> 200 with token
	token, _ := ts.login(t, "ann1", "longenough1")

	// save_tab -> 201
	rec := ts.do(t, http.MethodPost, "/save_tab", token, saveTabBody("http://a", "A"))
	require.Equal(t, http.StatusCreated, rec.Code)

	// get_tabs -> exactly one record with url http://a
	tabs := ts.listTabs(t, token)
	require.Len(t, tabs, 1)
	assert.Equal(t, "http://a", tabs[0].URL)

	// delete_tab -> 200
	rec = ts.do(t, http.MethodDelete, "/delete_tab", token, map[string]string{"url": "http://a"})
	require.Equal(t, http.StatusOK, rec.Code)

	// get_tabs -> empty array
	assert.Empty(t, ts.listTabs(t, token))
}
