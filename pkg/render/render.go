// Package render turns declared field metadata into display logic. It holds
// two name-keyed factory registries — value formatters and truncation
// wrappers — and a small combinator for composing them into a single render
// function per column.
package render

import (
	"fmt"

	"github.com/leapstack-labs/listkit/pkg/core"
)

// ValueFunc is a format-stage transform: raw cell value to display value.
// The record gives access to sibling fields on the same row.
type ValueFunc func(value any, rec core.Record) any

// Func is a full render function: raw cell value to displayable node.
type Func func(value any, rec core.Record, index int) core.Node

// Stage wraps a render function, producing a new one. Stages let the column
// resolver build an explicit ordered pipeline with at most one format chain
// and one truncation wrapper per column.
type Stage func(Func) Func

// Compose applies stages to base in order. Nil stages are skipped.
func Compose(base Func, stages ...Stage) Func {
	fn := base
	for _, s := range stages {
		if s != nil {
			fn = s(fn)
		}
	}
	return fn
}

// Text is the base render: the raw value's string image, no decoration.
func Text() Func {
	return func(value any, _ core.Record, _ int) core.Node {
		return core.TextNode(Stringify(value))
	}
}

// FormatStage lifts a value transform into a pipeline stage. A nil
// transform is the identity stage.
func FormatStage(vf ValueFunc) Stage {
	if vf == nil {
		return nil
	}
	return func(prev Func) Func {
		return func(value any, rec core.Record, index int) core.Node {
			return prev(vf(value, rec), rec, index)
		}
	}
}

// Amend returns a transform substituting def for non-useful values. It is
// the fallback format stage for columns that declare a default but no
// format.
func Amend(def string) ValueFunc {
	return func(value any, _ core.Record) any {
		if !core.Useful(value) {
			return def
		}
		return value
	}
}

// Stringify renders a value for display. Nil becomes the empty string.
func Stringify(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// FormatSpec names a registered formatter with its options.
type FormatSpec struct {
	Name    string
	Options Options
}

// TruncateSpec names a registered truncation wrapper with its options.
type TruncateSpec struct {
	Name    string
	Options Options
}

// TruncateDefault selects the default truncation with no parameters.
// It corresponds to a bare "truncate me" declaration.
func TruncateDefault() *TruncateSpec {
	return &TruncateSpec{Name: "default"}
}
