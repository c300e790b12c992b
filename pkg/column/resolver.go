package column

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/leapstack-labs/listkit/pkg/core"
	"github.com/leapstack-labs/listkit/pkg/render"
)

// Descriptor is a resolved, render-ready column. Render may be nil: the
// widget then shows the raw value's string image.
type Descriptor struct {
	Title  string
	Key    string
	Render render.Func
}

// merge applies an override on top of d. Non-zero override fields win.
func (d Descriptor) merge(ov Descriptor) Descriptor {
	if ov.Title != "" {
		d.Title = ov.Title
	}
	if ov.Key != "" {
		d.Key = ov.Key
	}
	if ov.Render != nil {
		d.Render = ov.Render
	}
	return d
}

// ResolveOptions selects and shapes the columns produced for one list page.
type ResolveOptions struct {
	// Type is the registered record-type name.
	Type string
	// Group filters declared fields: nil passes everything, a string
	// requires an exact tag match, a []string requires membership.
	Group any
	// Overrides replace descriptor fields per declared field name;
	// override fields win over resolved ones.
	Overrides map[string]Descriptor
	// Mounts append a follow-up column immediately after the named field,
	// verbatim.
	Mounts map[string]Descriptor
	// Extras append at the end, unmodified.
	Extras []Descriptor
	// Index prepends a 1-based sequence column.
	Index bool
}

// Resolver produces column descriptors and memoizes them: while the
// dependency set (type, group, overrides, mounts, extras, index flag) keeps
// the same identity, Resolve returns the previous slice untouched.
type Resolver struct {
	mu    sync.Mutex
	valid bool
	dep   depKey
	cols  []Descriptor
}

// NewResolver returns an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// depKey is the identity fingerprint of a ResolveOptions value. Maps and
// slices compare by reference, matching dependency-identity semantics:
// passing the same collections yields the memoized result, a fresh
// collection forces recomputation.
type depKey struct {
	typeName  string
	group     string
	index     bool
	overrides uintptr
	mounts    uintptr
	extras    uintptr
}

func depOf(opts ResolveOptions) depKey {
	return depKey{
		typeName:  opts.Type,
		group:     groupKey(opts.Group),
		index:     opts.Index,
		overrides: pointerOf(opts.Overrides),
		mounts:    pointerOf(opts.Mounts),
		extras:    pointerOf(opts.Extras),
	}
}

func groupKey(group any) string {
	switch g := group.(type) {
	case nil:
		return ""
	case string:
		return "s:" + g
	case []string:
		sorted := append([]string(nil), g...)
		sort.Strings(sorted)
		return "m:" + strings.Join(sorted, ",")
	}
	return "?"
}

func pointerOf(v any) uintptr {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func:
		if rv.IsNil() {
			return 0
		}
		return rv.Pointer()
	}
	return 0
}

// Resolve returns the ordered column descriptors for opts. Calls with an
// unchanged dependency set return the previous slice (referential
// stability, no recomputation).
func (r *Resolver) Resolve(opts ResolveOptions) []Descriptor {
	dep := depOf(opts)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.valid && dep == r.dep {
		return r.cols
	}

	cols := resolve(opts)
	r.dep = dep
	r.cols = cols
	r.valid = true
	return cols
}

func resolve(opts ResolveOptions) []Descriptor {
	fields, _ := Fields(opts.Type)

	cols := make([]Descriptor, 0, len(fields)+len(opts.Extras)+1)
	for _, f := range fields {
		if !groupPass(f.Meta.Groups, opts.Group) {
			continue
		}
		d := resolveField(f)
		if ov, ok := opts.Overrides[f.Name]; ok {
			d = d.merge(ov)
		}
		cols = append(cols, d)
		if mount, ok := opts.Mounts[f.Name]; ok {
			cols = append(cols, mount)
		}
	}

	if opts.Index {
		cols = append([]Descriptor{indexColumn()}, cols...)
	}
	cols = append(cols, opts.Extras...)
	return cols
}

// resolveField composes the render pipeline for one declared field:
// format chain, then empty-value substitution, then truncation wrapper.
func resolveField(f Field) Descriptor {
	meta := f.Meta

	key := meta.Key
	if key == "" {
		key = f.Name
	}
	def := meta.Default
	if def == "" {
		def = DefaultPlaceholder
	}

	var vf render.ValueFunc
	if meta.Format != nil && meta.Format.Name != "" {
		fopts := meta.Format.Options
		if !fopts.Has("default") {
			merged := make(render.Options, len(fopts)+1)
			for k, v := range fopts {
				merged[k] = v
			}
			merged["default"] = def
			fopts = merged
		}
		vf = render.BuildFormat(&render.FormatSpec{Name: meta.Format.Name, Options: fopts})
	}
	if vf == nil && meta.Amend {
		vf = render.Amend(def)
	}

	var fn render.Func
	if vf != nil || meta.Truncate != nil {
		fn = render.Compose(render.Text(),
			render.FormatStage(vf),
			render.BuildTruncate(meta.Truncate))
	}

	return Descriptor{Title: meta.Title, Key: key, Render: fn}
}

// groupPass is the group filter: a pure predicate over declared tags.
// No active group, or an untagged field, always passes.
func groupPass(tags []string, group any) bool {
	if group == nil || len(tags) == 0 {
		return true
	}
	switch g := group.(type) {
	case string:
		for _, tag := range tags {
			if tag == g {
				return true
			}
		}
		return false
	case []string:
		for _, tag := range tags {
			for _, want := range g {
				if tag == want {
					return true
				}
			}
		}
		return false
	}
	return true
}

func indexColumn() Descriptor {
	return Descriptor{
		Title: "#",
		Key:   "_index",
		Render: func(_ any, _ core.Record, index int) core.Node {
			return core.TextNode(strconv.Itoa(index + 1))
		},
	}
}
