// Package search owns the query/pagination state behind a paginated list
// page: it merges multi-source initial state, performs fetches, and keeps
// the persisted search state in step with the state it holds.
package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/listkit/pkg/core"
	"github.com/leapstack-labs/listkit/pkg/query"
)

// ErrNoFetch is returned by New when no fetch function is supplied.
var ErrNoFetch = errors.New("search: fetch function is required")

// Engine owns the current query payload and pagination for one list page.
//
// State moves only through Trigger. Between idle and loading it transitions
// on trigger invocation and fetch settlement; persistence runs on settlement
// whether the fetch succeeded or not.
//
// Overlapping triggers are fenced by a monotonic request epoch: a settling
// fetch commits its result and persists only if no newer trigger started in
// the meantime. The stale call still returns its own result to its caller.
type Engine struct {
	fetch  core.Fetch
	link   Link
	store  Store
	opts   Options
	logger *slog.Logger

	mu      sync.Mutex
	payload core.Payload
	pg      core.Pagination
	loading bool
	epoch   uint64
	last    *core.PageResult

	initOnce sync.Once
}

// New creates an Engine. link and store may be nil when the corresponding
// sync/cache mode is off.
//
// The effective initial payload merges, lowest to highest precedence: the
// declared initial payload, the cached payload (cache enabled), and the
// link-decoded payload (sync mode link). The static payload takes no part
// in this merge; it is appended only at fetch time.
func New(fetch core.Fetch, link Link, store Store, opts Options) (*Engine, error) {
	if fetch == nil {
		return nil, ErrNoFetch
	}
	opts.applyDefaults()

	e := &Engine{
		fetch:  fetch,
		link:   link,
		store:  store,
		opts:   opts,
		logger: opts.Logger,
		pg:     opts.Pagination,
	}

	payload := opts.Initial.Clone()
	if opts.Cache.Enabled && store != nil {
		cached := query.Decode(store.Get(e.storeKey()), opts.Format, e.logger)
		payload = payload.Merge(cached)
	}
	if opts.Sync == SyncLink && link != nil {
		linked := query.Decode(link.Get(ReservedParam), opts.Format, e.logger)
		payload = payload.Merge(linked)
	}
	e.payload = payload

	return e, nil
}

// Initialize performs the one-shot mount behavior: when RequestOnMount is
// set, the first call triggers an argument-less fetch. Every later call is
// a no-op.
func (e *Engine) Initialize(ctx context.Context) error {
	var err error
	e.initOnce.Do(func() {
		if e.opts.RequestOnMount {
			_, err = e.Trigger(ctx, nil, nil)
		}
	})
	return err
}

// Trigger performs a fetch with updated state.
//
// A nil payload keeps the current query payload; a non-nil payload replaces
// it and resets the page to 1. A nil pg keeps the current pagination; a
// non-nil pg adopts its page size, preserving the current page only when
// the size is unchanged (the supplied page is used then, when positive).
// When both arguments are given the query-driven page reset wins.
//
// Fetch errors are not retried and not swallowed; they return to the
// caller, but the loading flag and persistence still settle.
func (e *Engine) Trigger(ctx context.Context, payload core.Payload, pg *core.Pagination) (*core.PageResult, error) {
	e.mu.Lock()
	e.loading = true
	e.epoch++
	epoch := e.epoch

	if pg != nil {
		if pg.PageSize == e.pg.PageSize {
			if pg.Page > 0 {
				e.pg.Page = pg.Page
			}
		} else {
			e.pg.Page = 1
			if pg.PageSize > 0 {
				e.pg.PageSize = pg.PageSize
			}
		}
	}
	if payload != nil {
		e.payload = payload.Clone()
		e.pg.Page = 1
	}

	params := e.payload.Clone()
	params[core.ParamPage] = e.pg.Page
	params[core.ParamPageSize] = e.pg.PageSize
	params = params.Merge(e.opts.Static)
	e.mu.Unlock()

	res, err := e.fetch(ctx, params)
	e.settle(epoch, res, err)
	return res, err
}

// settle runs on fetch settlement, success or failure alike. Only the
// newest in-flight request commits state and persists.
func (e *Engine) settle(epoch uint64, res *core.PageResult, err error) {
	e.mu.Lock()
	if epoch != e.epoch {
		e.mu.Unlock()
		return
	}
	e.loading = false
	if err == nil {
		e.last = res
	} else {
		e.logger.Warn("list fetch failed", "error", err)
	}
	snapshot := e.payload.Clone()
	e.mu.Unlock()

	e.persist(snapshot)
}

// persist writes the encoded payload to the configured destinations. The
// link entry is removed when there is nothing to persist; the cache entry
// is always written, empty included, to clear stale state.
func (e *Engine) persist(payload core.Payload) {
	encoded := query.Encode(payload, e.opts.Format)
	if e.opts.Sync != SyncOff && e.link != nil {
		e.link.Replace(ReservedParam, encoded)
	}
	if e.opts.Cache.Enabled && e.store != nil {
		e.store.Set(e.storeKey(), encoded)
	}
}

func (e *Engine) storeKey() string {
	path := ""
	if e.link != nil {
		path = e.link.Path()
	}
	return cacheKey(path, e.opts.Cache.Key)
}

// Payload returns a copy of the current query payload.
func (e *Engine) Payload() core.Payload {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.payload.Clone()
}

// Pagination returns the current page cursor.
func (e *Engine) Pagination() core.Pagination {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pg
}

// Loading reports whether the newest trigger is still in flight.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// LastResult returns the most recently committed page result, or nil.
func (e *Engine) LastResult() *core.PageResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}
