package core

import "fmt"

// EnumConst is one named constant of a domain enum.
type EnumConst struct {
	Name  string
	Value any
}

// Enum is the lookup capability exposed by domain enum types: it maps a raw
// stored value to its descriptive constant.
type Enum interface {
	ValueOf(raw any) (EnumConst, bool)
}

// MapEnum is a map-backed Enum. Keys are compared by their string image, so
// a raw int 1 matches a declared key "1" and vice versa; enum raw values
// arriving from a decoded query string keep their meaning.
type MapEnum map[any]string

// ValueOf implements Enum.
func (m MapEnum) ValueOf(raw any) (EnumConst, bool) {
	if name, ok := m[raw]; ok {
		return EnumConst{Name: name, Value: raw}, true
	}
	want := fmt.Sprint(raw)
	for k, name := range m {
		if fmt.Sprint(k) == want {
			return EnumConst{Name: name, Value: k}, true
		}
	}
	return EnumConst{}, false
}
