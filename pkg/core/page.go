package core

import "context"

// Pagination is the page cursor for offset-paginated list requests.
// The zero value means "unset"; callers that want defaults use DefaultPagination.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// DefaultPagination is the pagination used when a caller supplies none.
func DefaultPagination() Pagination {
	return Pagination{Page: 1, PageSize: 10}
}

// PageResult is one page of list data as returned by a fetch function.
type PageResult struct {
	List     []Record `json:"list"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
	Total    int      `json:"total"`
}

// Fetch is the caller-supplied data source. The params payload merges the
// current query payload, pagination fields, and any static payload.
type Fetch func(ctx context.Context, params Payload) (*PageResult, error)

// Pagination field names as they appear in fetch params.
const (
	ParamPage     = "page"
	ParamPageSize = "pageSize"
)
