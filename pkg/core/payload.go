package core

import "reflect"

// Record is one row of fetched list data, keyed by field name.
type Record = map[string]any

// Payload is the user-controlled filter/search field set. It excludes
// pagination and static fields, which are merged in only at fetch time.
type Payload map[string]any

// Useful reports whether a payload value carries information worth
// sending or persisting. Nil, empty strings, and empty sequences do not.
func Useful(v any) bool {
	if v == nil {
		return false
	}
	switch x := v.(type) {
	case string:
		return x != ""
	case []string:
		return len(x) > 0
	case []any:
		return len(x) > 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// Filter returns a copy of p with all non-useful entries dropped.
func (p Payload) Filter() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		if Useful(v) {
			out[k] = v
		}
	}
	return out
}

// Clone returns a shallow copy of p. A nil payload clones to an empty one.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns a new payload with every overlay applied in order.
// Later overlays win key conflicts.
func (p Payload) Merge(overlays ...Payload) Payload {
	out := p.Clone()
	for _, o := range overlays {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}
