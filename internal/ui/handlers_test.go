package ui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/listkit/internal/config"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func setupServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{SessionSecret: "test-secret"}
	cfg.ApplyDefaults()
	return NewServer(cfg, nil)
}

func get(t *testing.T, s *Server, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, r)
	return rec
}

// =============================================================================
// List Page
// =============================================================================

func TestListPage(t *testing.T) {
	s := setupServer(t)

	rec := get(t, s, "/users", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<table", "renders a table")
	assert.Contains(t, body, "Ada Lovelace", "first page shows the first users")
	assert.Contains(t, body, "$0.50", "balance column goes through the money format")
	assert.Contains(t, body, "Active", "status column goes through the enum lookup")
	assert.Contains(t, body, "page 1 of 4 (40 total)")
}

func TestListPageFilter(t *testing.T) {
	s := setupServer(t)

	rec := get(t, s, "/users?name=ada", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ada Lovelace")
	assert.NotContains(t, body, "Grace Hopper")
	assert.Contains(t, body, "_search=", "share link carries the encoded search state")
}

func TestListPagePagination(t *testing.T) {
	s := setupServer(t)

	rec := get(t, s, "/users?page=2&pageSize=5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "page 2 of 8 (40 total)")
	assert.Contains(t, body, "prev")
	assert.Contains(t, body, "next")
}

func TestListPageFilterResetsPage(t *testing.T) {
	s := setupServer(t)

	// A query change always lands on page 1, whatever page was asked for.
	rec := get(t, s, "/users?name=ada&page=3", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "page 1 of 1 (4 total)")
}

func TestListPageTruncatedCellsCarryFullValue(t *testing.T) {
	s := setupServer(t)

	rec := get(t, s, "/users", nil)

	body := rec.Body.String()
	// The team column shows the last path segment; the full path rides in
	// the title attribute.
	assert.Contains(t, body, `title="eng/platform/tools"`)
	assert.Contains(t, body, ">tools</td>")
}

func TestSearchStateStickyViaSession(t *testing.T) {
	s := setupServer(t)

	// Search once; the session cookie now caches the encoded state.
	first := get(t, s, "/users?name=grace", nil)
	require.Equal(t, http.StatusOK, first.Code)
	cookies := first.Result().Cookies()
	require.NotEmpty(t, cookies, "search persists into the session")

	// A bare visit with the cookie restores the cached search.
	second := get(t, s, "/users", cookies)
	require.Equal(t, http.StatusOK, second.Code)
	body := second.Body.String()
	assert.Contains(t, body, "Grace Hopper")
	assert.NotContains(t, body, "Ada Lovelace")
}

func TestHomeRedirects(t *testing.T) {
	s := setupServer(t)

	rec := get(t, s, "/", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("Location"))
}

func TestShareLinkRoundTrip(t *testing.T) {
	s := setupServer(t)

	first := get(t, s, "/users?name=grace", nil)
	body := first.Body.String()

	// Pull the share URL out of the rendered page.
	start := strings.Index(body, `<a href="/users?_search=`)
	require.GreaterOrEqual(t, start, 0, "share link present")
	rest := body[start+len(`<a href="`):]
	shareURL := rest[:strings.Index(rest, `"`)]

	// A fresh visitor opening the share link sees the same search.
	second := get(t, s, shareURL, nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "Grace Hopper")
	assert.NotContains(t, second.Body.String(), "Ada Lovelace")
}
