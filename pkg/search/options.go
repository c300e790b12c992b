package search

import (
	"log/slog"

	"github.com/leapstack-labs/listkit/pkg/core"
	"github.com/leapstack-labs/listkit/pkg/query"
)

// SyncMode controls persistence of the encoded query payload to the link.
type SyncMode string

const (
	// SyncOff never touches the link.
	SyncOff SyncMode = "off"
	// SyncLink reads the link at initialization and writes it after every
	// fetch, making search state shareable and bookmarkable.
	SyncLink SyncMode = "link"
	// SyncCopyOnly writes the link after every fetch so the current state
	// can be copied, but never adopts link values at initialization.
	SyncCopyOnly SyncMode = "copy"
)

// CacheMode controls persistence to the session-scoped store.
// The zero value disables caching.
type CacheMode struct {
	Enabled bool
	// Key distinguishes multiple engines on the same page path. Empty
	// means the default marker.
	Key string
}

// CacheDefault enables caching under the default key.
func CacheDefault() CacheMode {
	return CacheMode{Enabled: true}
}

// CacheNamed enables caching under the given key.
func CacheNamed(key string) CacheMode {
	return CacheMode{Enabled: true, Key: key}
}

// Options configures an Engine. Fixed at engine creation.
type Options struct {
	// Initial is the declared initial query payload, lowest precedence in
	// the initialization merge.
	Initial core.Payload

	// Pagination is the initial page cursor. Zero means page 1, size 10.
	Pagination core.Pagination

	// Static is always merged into outgoing fetch params, wins every key
	// conflict, and is never persisted or overridden by cache/link values.
	Static core.Payload

	// RequestOnMount makes Initialize perform one argument-less trigger.
	RequestOnMount bool

	// Sync selects link persistence. Default SyncOff.
	Sync SyncMode

	// Cache selects session-store persistence. Default off.
	Cache CacheMode

	// Format is the storage format for persisted state.
	// Default query.FormatOpaque.
	Format query.Format

	// Logger receives integrity warnings and fetch failures.
	// Nil means slog.Default().
	Logger *slog.Logger
}

func (o *Options) applyDefaults() {
	if o.Pagination.Page <= 0 || o.Pagination.PageSize <= 0 {
		def := core.DefaultPagination()
		if o.Pagination.Page <= 0 {
			o.Pagination.Page = def.Page
		}
		if o.Pagination.PageSize <= 0 {
			o.Pagination.PageSize = def.PageSize
		}
	}
	if o.Sync == "" {
		o.Sync = SyncOff
	}
	if o.Format == "" {
		o.Format = query.FormatOpaque
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
