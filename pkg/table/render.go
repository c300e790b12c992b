package table

import (
	"fmt"
	"io"

	gptable "github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/listkit/pkg/core"
	"github.com/leapstack-labs/listkit/pkg/render"
)

// Cell runs one column's render pipeline over one row.
func Cell(t *Table, colIdx, rowIdx int) core.Node {
	col := t.Columns[colIdx]
	rec := t.Rows[rowIdx]
	value := rec[col.Key]
	if col.Render == nil {
		return core.TextNode(render.Stringify(value))
	}
	return col.Render(value, rec, rowIdx)
}

func newWriter(w io.Writer, t *Table) gptable.Writer {
	tw := gptable.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(gptable.StyleLight)

	header := make(gptable.Row, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Title
	}
	tw.AppendHeader(header)

	for rowIdx := range t.Rows {
		row := make(gptable.Row, len(t.Columns))
		for colIdx := range t.Columns {
			row[colIdx] = Cell(t, colIdx, rowIdx).Text
		}
		tw.AppendRow(row)
	}

	return tw
}

// Render writes t as a text table. Truncated cells show their visible
// segment only; hover disclosure is an HTML widget concern.
func Render(w io.Writer, t *Table) {
	newWriter(w, t).Render()
	_, _ = fmt.Fprintf(w, "page %d, %d per page, %d total\n", t.Page, t.PageSize, t.Total)
}

// RenderHTML writes t as an HTML table fragment with the same cell text
// as Render, for hosts embedding the table without a template of their
// own. Cell text is HTML-escaped.
func RenderHTML(w io.Writer, t *Table) {
	newWriter(w, t).RenderHTML()
	_, _ = fmt.Fprintf(w, "<p>page %d, %d per page, %d total</p>\n", t.Page, t.PageSize, t.Total)
}
