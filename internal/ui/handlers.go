package ui

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/listkit/pkg/column"
	"github.com/leapstack-labs/listkit/pkg/core"
	"github.com/leapstack-labs/listkit/pkg/search"
	"github.com/leapstack-labs/listkit/pkg/table"
)

// Handlers serves the demo user list page.
type Handlers struct {
	data         *Dataset
	sessionStore sessions.Store
	sessionName  string
	pageSize     int
	logger       *slog.Logger
	resolver     *column.Resolver
}

// NewHandlers creates the list-page handlers.
func NewHandlers(data *Dataset, sessionStore sessions.Store, sessionName string, pageSize int, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		data:         data,
		sessionStore: sessionStore,
		sessionName:  sessionName,
		pageSize:     pageSize,
		logger:       logger,
		resolver:     column.NewResolver(),
	}
}

// List renders the user list. Search state persists to the link's _search
// parameter (shareable) and to the session (sticky across visits); plain
// name/status/page/pageSize parameters come from the filter form and
// pagination links.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	link := search.NewURLLink(r.URL)
	store := search.NewSessionStore(h.sessionStore, w, r, h.sessionName, h.logger)

	// The request is the component's lifetime here, so the engine's
	// starting page size is restored from the URL; a pageSize parameter
	// then matches it and the supplied page survives the size-change law.
	eng, err := search.New(h.data.Fetch, link, store, search.Options{
		Pagination:     core.Pagination{Page: 1, PageSize: atoi(q.Get("pageSize"), h.pageSize)},
		RequestOnMount: true,
		Sync:           search.SyncLink,
		Cache:          search.CacheDefault(),
		Logger:         h.logger,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var res *core.PageResult
	switch {
	case q.Has("name") || q.Has("status"):
		payload := core.Payload{"name": q.Get("name"), "status": q.Get("status")}
		res, err = eng.Trigger(r.Context(), payload, pgFromQuery(q, h.pageSize))
	case q.Has("page") || q.Has("pageSize"):
		res, err = eng.Trigger(r.Context(), nil, pgFromQuery(q, h.pageSize))
	default:
		err = eng.Initialize(r.Context())
		res = eng.LastResult()
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cols := h.resolver.Resolve(column.ResolveOptions{Type: UserType, Index: true})
	tbl := table.NewBuilder().Build(cols, res, eng.Loading(), eng.Trigger)

	view := buildListView(tbl, eng, link)
	if err := listTemplate.Execute(w, view); err != nil {
		h.logger.Error("render failed", "error", err)
	}
}

func pgFromQuery(q url.Values, defaultSize int) *core.Pagination {
	pg := &core.Pagination{Page: atoi(q.Get("page"), 0), PageSize: atoi(q.Get("pageSize"), defaultSize)}
	if pg.Page == 0 && pg.PageSize == defaultSize {
		return nil
	}
	return pg
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

type listView struct {
	Headers    []string
	Rows       [][]core.Node
	Page       int
	PageSize   int
	Total      int
	TotalPages int
	PrevURL    string
	NextURL    string
	ShareURL   string
	FilterName string
	FilterStat string
}

func buildListView(tbl *table.Table, eng *search.Engine, link *search.URLLink) listView {
	view := listView{
		Page:       tbl.Page,
		PageSize:   tbl.PageSize,
		Total:      tbl.Total,
		ShareURL:   link.String(),
		FilterName: paramString(eng.Payload(), "name"),
		FilterStat: paramString(eng.Payload(), "status"),
	}
	if tbl.PageSize > 0 {
		view.TotalPages = (tbl.Total + tbl.PageSize - 1) / tbl.PageSize
	}

	for _, col := range tbl.Columns {
		view.Headers = append(view.Headers, col.Title)
	}
	for rowIdx := range tbl.Rows {
		row := make([]core.Node, len(tbl.Columns))
		for colIdx := range tbl.Columns {
			row[colIdx] = table.Cell(tbl, colIdx, rowIdx)
		}
		view.Rows = append(view.Rows, row)
	}

	if tbl.Page > 1 {
		view.PrevURL = pageURL(link, tbl.Page-1, tbl.PageSize)
	}
	if tbl.Page < view.TotalPages {
		view.NextURL = pageURL(link, tbl.Page+1, tbl.PageSize)
	}
	return view
}

// pageURL builds a pagination link on top of the canonical share link: the
// query payload rides in the _search parameter, so the form parameters are
// dropped.
func pageURL(link *search.URLLink, page, size int) string {
	u, err := url.Parse(link.String())
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Del("name")
	q.Del("status")
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(size))
	u.RawQuery = q.Encode()
	return u.String()
}

var listTemplate = template.Must(template.New("list").Parse(`<!doctype html>
<html>
<head><title>Users</title></head>
<body>
<h1>Users</h1>
<form method="get" action="/users">
  <input type="text" name="name" placeholder="Name" value="{{.FilterName}}">
  <select name="status">
    <option value="">Any status</option>
    <option value="1" {{if eq .FilterStat "1"}}selected{{end}}>Active</option>
    <option value="2" {{if eq .FilterStat "2"}}selected{{end}}>Suspended</option>
    <option value="3" {{if eq .FilterStat "3"}}selected{{end}}>Closed</option>
  </select>
  <button type="submit">Search</button>
</form>
<table border="1">
  <thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
  <tbody>
  {{range .Rows}}<tr>{{range .}}<td{{if .Full}} title="{{.Full}}"{{end}}>{{.Text}}</td>{{end}}</tr>
  {{end}}</tbody>
</table>
<p>page {{.Page}} of {{.TotalPages}} ({{.Total}} total)</p>
<p>
  {{if .PrevURL}}<a href="{{.PrevURL}}">&laquo; prev</a>{{end}}
  {{if .NextURL}}<a href="{{.NextURL}}">next &raquo;</a>{{end}}
</p>
<p><a href="{{.ShareURL}}">Share this search</a></p>
</body>
</html>
`))
