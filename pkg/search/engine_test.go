package search

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/listkit/pkg/core"
	"github.com/leapstack-labs/listkit/pkg/query"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

// capturingFetch records every params payload it receives and returns a
// fixed result.
type capturingFetch struct {
	mu     sync.Mutex
	calls  []core.Payload
	result *core.PageResult
	err    error
}

func (f *capturingFetch) fetch(_ context.Context, params core.Payload) (*core.PageResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, params)
	return f.result, f.err
}

func (f *capturingFetch) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *capturingFetch) lastCall(t *testing.T) core.Payload {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func testLink(t *testing.T, rawURL string) *URLLink {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return NewURLLink(u)
}

func emptyResult() *core.PageResult {
	return &core.PageResult{List: nil, Page: 1, PageSize: 10, Total: 0}
}

// =============================================================================
// Initialization Precedence
// =============================================================================

func TestInitialPayloadPrecedence(t *testing.T) {
	link := testLink(t, "/users?"+ReservedParam+"="+url.QueryEscape(
		query.Encode(core.Payload{"b": "link", "c": "link"}, query.FormatText)))

	store := NewMapStore()
	store.Set(cacheKey("/users", ""), query.Encode(
		core.Payload{"a": "cache", "b": "cache"}, query.FormatText))

	f := &capturingFetch{result: emptyResult()}
	e, err := New(f.fetch, link, store, Options{
		Initial: core.Payload{"a": "initial", "b": "initial", "d": "initial"},
		Sync:    SyncLink,
		Cache:   CacheDefault(),
		Format:  query.FormatText,
	})
	require.NoError(t, err)

	// Key-wise: declared, overridden by cache, overridden by link.
	assert.Equal(t, core.Payload{
		"a": "cache",
		"b": "link",
		"c": "link",
		"d": "initial",
	}, e.Payload())
}

func TestCopyOnlyModeDoesNotReadLink(t *testing.T) {
	link := testLink(t, "/users?"+ReservedParam+"="+
		query.Encode(core.Payload{"a": "link"}, query.FormatText))

	f := &capturingFetch{result: emptyResult()}
	e, err := New(f.fetch, link, nil, Options{
		Initial: core.Payload{"a": "initial"},
		Sync:    SyncCopyOnly,
		Format:  query.FormatText,
	})
	require.NoError(t, err)

	assert.Equal(t, core.Payload{"a": "initial"}, e.Payload())

	// The link is still written after a fetch.
	_, err = e.Trigger(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, query.Encode(core.Payload{"a": "initial"}, query.FormatText),
		link.Get(ReservedParam))
}

func TestCorruptCacheFailsOpen(t *testing.T) {
	store := NewMapStore()
	store.Set(cacheKey("/users", ""), "!!!not base64!!!")

	f := &capturingFetch{result: emptyResult()}
	e, err := New(f.fetch, testLink(t, "/users"), store, Options{
		Initial: core.Payload{"a": "initial"},
		Cache:   CacheDefault(),
	})
	require.NoError(t, err)

	assert.Equal(t, core.Payload{"a": "initial"}, e.Payload())
}

// =============================================================================
// Pagination Laws
// =============================================================================

func TestTriggerPaginationLaws(t *testing.T) {
	tests := []struct {
		name     string
		start    core.Pagination
		payload  core.Payload
		pg       *core.Pagination
		wantPage int
		wantSize int
	}{
		{
			name:     "same pageSize preserves supplied page",
			start:    core.Pagination{Page: 1, PageSize: 20},
			pg:       &core.Pagination{Page: 3, PageSize: 20},
			wantPage: 3,
			wantSize: 20,
		},
		{
			name:     "pageSize change resets page",
			start:    core.Pagination{Page: 5, PageSize: 10},
			pg:       &core.Pagination{Page: 3, PageSize: 20},
			wantPage: 1,
			wantSize: 20,
		},
		{
			name:     "new payload resets page",
			start:    core.Pagination{Page: 4, PageSize: 10},
			payload:  core.Payload{"name": "ada"},
			wantPage: 1,
			wantSize: 10,
		},
		{
			name:     "query-driven reset wins over pagination argument",
			start:    core.Pagination{Page: 2, PageSize: 20},
			payload:  core.Payload{"name": "ada"},
			pg:       &core.Pagination{Page: 7, PageSize: 20},
			wantPage: 1,
			wantSize: 20,
		},
		{
			name:     "no arguments keeps everything",
			start:    core.Pagination{Page: 6, PageSize: 50},
			wantPage: 6,
			wantSize: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &capturingFetch{result: emptyResult()}
			e, err := New(f.fetch, nil, nil, Options{Pagination: tt.start})
			require.NoError(t, err)

			_, err = e.Trigger(context.Background(), tt.payload, tt.pg)
			require.NoError(t, err)

			got := e.Pagination()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantSize, got.PageSize)
		})
	}
}

// =============================================================================
// Fetch Params and Static Payload
// =============================================================================

func TestTriggerParamsMergeStaticLast(t *testing.T) {
	f := &capturingFetch{result: emptyResult()}
	e, err := New(f.fetch, nil, nil, Options{
		Initial:    core.Payload{"kind": "user", "name": "ada"},
		Static:     core.Payload{"kind": "account", "tenant": "acme"},
		Pagination: core.Pagination{Page: 2, PageSize: 25},
	})
	require.NoError(t, err)

	_, err = e.Trigger(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, core.Payload{
		"name":             "ada",
		"kind":             "account", // static wins key conflicts
		"tenant":           "acme",
		core.ParamPage:     2,
		core.ParamPageSize: 25,
	}, f.lastCall(t))
}

func TestStaticPayloadNeverPersisted(t *testing.T) {
	link := testLink(t, "/users")
	f := &capturingFetch{result: emptyResult()}
	e, err := New(f.fetch, link, nil, Options{
		Static: core.Payload{"tenant": "acme"},
		Sync:   SyncLink,
		Format: query.FormatText,
	})
	require.NoError(t, err)

	_, err = e.Trigger(context.Background(), core.Payload{"name": "ada"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "name=ada", link.Get(ReservedParam))
}

// =============================================================================
// Settlement: Persistence and Loading
// =============================================================================

func TestPersistenceRunsOnFetchFailure(t *testing.T) {
	link := testLink(t, "/users")
	store := NewMapStore()
	f := &capturingFetch{err: errors.New("backend down")}
	e, err := New(f.fetch, link, store, Options{
		Sync:   SyncLink,
		Cache:  CacheDefault(),
		Format: query.FormatText,
	})
	require.NoError(t, err)

	_, err = e.Trigger(context.Background(), core.Payload{"name": "ada"}, nil)

	assert.EqualError(t, err, "backend down", "fetch errors surface to the caller")
	assert.False(t, e.Loading(), "loading clears on failure")
	assert.Equal(t, "name=ada", link.Get(ReservedParam))
	assert.Equal(t, "name=ada", store.Get(cacheKey("/users", "")))
	assert.Nil(t, e.LastResult())
}

func TestEmptyPayloadClearsStorage(t *testing.T) {
	link := testLink(t, "/users?"+ReservedParam+"=stale")
	store := NewMapStore()
	store.Set(cacheKey("/users", ""), "stale")

	f := &capturingFetch{result: emptyResult()}
	e, err := New(f.fetch, link, store, Options{
		Sync:   SyncLink,
		Cache:  CacheDefault(),
		Format: query.FormatText,
	})
	require.NoError(t, err)

	_, err = e.Trigger(context.Background(), core.Payload{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "", link.Get(ReservedParam), "link parameter is removed")
	assert.Equal(t, "", store.Get(cacheKey("/users", "")), "cache entry is cleared, not left stale")
}

func TestNamedCacheKey(t *testing.T) {
	store := NewMapStore()
	f := &capturingFetch{result: emptyResult()}
	e, err := New(f.fetch, testLink(t, "/orders"), store, Options{
		Cache:  CacheNamed("archive"),
		Format: query.FormatText,
	})
	require.NoError(t, err)

	_, err = e.Trigger(context.Background(), core.Payload{"state": "done"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "state=done", store.Get("/orders_archive_search"))
}

// =============================================================================
// Mount Behavior
// =============================================================================

func TestInitializeIsOneShot(t *testing.T) {
	f := &capturingFetch{result: emptyResult()}
	e, err := New(f.fetch, nil, nil, Options{RequestOnMount: true})
	require.NoError(t, err)

	require.NoError(t, e.Initialize(context.Background()))
	require.NoError(t, e.Initialize(context.Background()))
	require.NoError(t, e.Initialize(context.Background()))

	assert.Equal(t, 1, f.callCount())
}

func TestInitializeWithoutRequestOnMount(t *testing.T) {
	f := &capturingFetch{result: emptyResult()}
	e, err := New(f.fetch, nil, nil, Options{})
	require.NoError(t, err)

	require.NoError(t, e.Initialize(context.Background()))

	assert.Equal(t, 0, f.callCount())
}

// =============================================================================
// Overlapping Triggers
// =============================================================================

func TestStaleCompletionDoesNotOverwrite(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	slowResult := &core.PageResult{Page: 1, PageSize: 10, Total: 111}
	fastResult := &core.PageResult{Page: 1, PageSize: 10, Total: 222}

	var first sync.Once
	fetch := func(_ context.Context, _ core.Payload) (*core.PageResult, error) {
		slow := false
		first.Do(func() { slow = true })
		if slow {
			close(started)
			<-release
			return slowResult, nil
		}
		return fastResult, nil
	}

	e, err := New(fetch, nil, nil, Options{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		res, err := e.Trigger(context.Background(), core.Payload{"q": "old"}, nil)
		// The stale call still returns its own result to its caller.
		assert.NoError(t, err)
		assert.Same(t, slowResult, res)
	}()

	<-started
	_, err = e.Trigger(context.Background(), core.Payload{"q": "new"}, nil)
	require.NoError(t, err)
	close(release)
	wg.Wait()

	assert.Same(t, fastResult, e.LastResult(),
		"an earlier-started, later-completing fetch must not overwrite fresher state")
	assert.False(t, e.Loading())
	assert.Equal(t, core.Payload{"q": "new"}, e.Payload())
}

// =============================================================================
// Construction
// =============================================================================

func TestNewRequiresFetch(t *testing.T) {
	_, err := New(nil, nil, nil, Options{})
	assert.ErrorIs(t, err, ErrNoFetch)
}
