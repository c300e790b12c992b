// Package table combines resolved columns with page data and pagination
// callbacks into one presentation-ready descriptor for a list widget.
package table

import (
	"context"
	"reflect"

	"github.com/leapstack-labs/listkit/pkg/column"
	"github.com/leapstack-labs/listkit/pkg/core"
)

// TriggerFunc is the search engine's trigger signature. Page changes invoke
// it with a nil query payload: paging never alters the query.
type TriggerFunc func(ctx context.Context, payload core.Payload, pg *core.Pagination) (*core.PageResult, error)

// PageFunc is the pagination-change handler bound into a Table.
type PageFunc func(ctx context.Context, page, pageSize int) (*core.PageResult, error)

// Table is the presentation-ready descriptor a list widget consumes.
type Table struct {
	Columns  []column.Descriptor
	Rows     []core.Record
	Page     int
	PageSize int
	Total    int
	Loading  bool
	// OnPage is nil when no trigger was supplied.
	OnPage PageFunc
}

// Builder memoizes Build on the identity of its inputs: as long as the same
// columns slice, page result, loading flag, and trigger come back, the same
// *Table comes back.
type Builder struct {
	dep   buildKey
	t     *Table
	valid bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

type buildKey struct {
	cols    uintptr
	res     *core.PageResult
	loading bool
	trigger uintptr
}

// Build binds columns, page data, and the pagination handler. res may be
// nil (no fetch yet); trigger may be nil (static table).
func (b *Builder) Build(cols []column.Descriptor, res *core.PageResult, loading bool, trigger TriggerFunc) *Table {
	dep := buildKey{
		cols:    sliceID(cols),
		res:     res,
		loading: loading,
		trigger: funcID(trigger),
	}
	if b.valid && dep == b.dep {
		return b.t
	}

	t := &Table{
		Columns: cols,
		Loading: loading,
	}
	if res != nil {
		t.Rows = res.List
		t.Page = res.Page
		t.PageSize = res.PageSize
		t.Total = res.Total
	}
	if trigger != nil {
		t.OnPage = func(ctx context.Context, page, pageSize int) (*core.PageResult, error) {
			return trigger(ctx, nil, &core.Pagination{Page: page, PageSize: pageSize})
		}
	}

	b.dep = dep
	b.t = t
	b.valid = true
	return t
}

func sliceID(cols []column.Descriptor) uintptr {
	if cols == nil {
		return 0
	}
	return reflect.ValueOf(cols).Pointer()
}

func funcID(f TriggerFunc) uintptr {
	if f == nil {
		return 0
	}
	return reflect.ValueOf(f).Pointer()
}
