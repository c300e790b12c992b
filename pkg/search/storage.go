package search

import (
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/sessions"
)

// ReservedParam is the link query parameter that carries the encoded
// search state.
const ReservedParam = "_search"

// cacheSuffix terminates every session-store key written by the engine.
const cacheSuffix = "search"

// defaultCacheMarker stands in for the cache key when caching is enabled
// without a named key.
const defaultCacheMarker = "default"

// Link is the routing boundary: the current location's path and query
// parameters. Replace swaps the link in place — implementations must not
// create a navigation history entry.
type Link interface {
	// Path returns the current location path.
	Path() string
	// Get returns the value of a query parameter, or "" when absent.
	Get(param string) string
	// Replace sets a query parameter to value, or removes it when value
	// is empty.
	Replace(param, value string)
}

// Store is the session-scoped key-value boundary. Absent keys read as "".
type Store interface {
	Get(key string) string
	Set(key, value string)
}

// URLLink implements Link over a url.URL. The demo server binds it to the
// request URL; after the engine persists, String carries the replacement
// location for the client to apply via history.replaceState.
type URLLink struct {
	u       *url.URL
	changed bool
}

// NewURLLink wraps u. The URL is copied; the caller's value is not mutated.
func NewURLLink(u *url.URL) *URLLink {
	c := *u
	return &URLLink{u: &c}
}

func (l *URLLink) Path() string { return l.u.Path }

func (l *URLLink) Get(param string) string { return l.u.Query().Get(param) }

func (l *URLLink) Replace(param, value string) {
	q := l.u.Query()
	if value == "" {
		q.Del(param)
	} else {
		q.Set(param, value)
	}
	if enc := q.Encode(); enc != l.u.RawQuery {
		l.u.RawQuery = enc
		l.changed = true
	}
}

// Changed reports whether any Replace altered the query since construction.
func (l *URLLink) Changed() bool { return l.changed }

// String returns the current link, path and query included.
func (l *URLLink) String() string { return l.u.String() }

// MapStore is an in-memory Store, safe for concurrent use. Useful in tests
// and in non-HTTP hosts.
type MapStore struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMapStore returns an empty MapStore.
func NewMapStore() *MapStore {
	return &MapStore{m: make(map[string]string)}
}

func (s *MapStore) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[key]
}

func (s *MapStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

// SessionStore is a Store over a gorilla session, bound to one
// request/response pair. Set saves the session immediately so the cookie
// goes out with the response being written.
type SessionStore struct {
	store  sessions.Store
	w      http.ResponseWriter
	r      *http.Request
	name   string
	logger *slog.Logger
}

// NewSessionStore binds a gorilla sessions.Store to a request. name is the
// session (cookie) name.
func NewSessionStore(store sessions.Store, w http.ResponseWriter, r *http.Request, name string, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{store: store, w: w, r: r, name: name, logger: logger}
}

func (s *SessionStore) Get(key string) string {
	sess, err := s.store.Get(s.r, s.name)
	if err != nil {
		// A bad cookie decodes to a fresh session; treat as absent.
		s.logger.Debug("session read failed", "error", err)
		return ""
	}
	if v, ok := sess.Values[key].(string); ok {
		return v
	}
	return ""
}

func (s *SessionStore) Set(key, value string) {
	sess, _ := s.store.Get(s.r, s.name)
	sess.Values[key] = value
	if err := sess.Save(s.r, s.w); err != nil {
		s.logger.Warn("session write failed", "key", key, "error", err)
	}
}

// cacheKey builds the session-store key for a page path and cache key.
func cacheKey(path, key string) string {
	if key == "" {
		key = defaultCacheMarker
	}
	return path + "_" + key + "_" + cacheSuffix
}
