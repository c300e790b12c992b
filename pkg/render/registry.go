package render

import (
	"sort"
	"sync"
)

// FormatFactory builds a value transform from merged options.
type FormatFactory func(Options) ValueFunc

// TruncateFactory builds a truncation wrapper around a previous render
// function. prev is never nil; factories wrap it rather than replace it.
type TruncateFactory func(opts Options, prev Func) Func

var (
	registryMu       sync.RWMutex
	formatRegistry   = make(map[string]FormatFactory)
	truncateRegistry = make(map[string]TruncateFactory)
)

// RegisterFormat adds a formatter factory under name. Built-ins register in
// init(); callers may add domain formatters the same way.
func RegisterFormat(name string, factory FormatFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	formatRegistry[name] = factory
}

// RegisterTruncate adds a truncation factory under name.
func RegisterTruncate(name string, factory TruncateFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	truncateRegistry[name] = factory
}

// Format retrieves a formatter factory by name.
func Format(name string) (FormatFactory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := formatRegistry[name]
	return f, ok
}

// Truncate retrieves a truncation factory by name.
func Truncate(name string) (TruncateFactory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := truncateRegistry[name]
	return f, ok
}

// BuildFormat resolves a format spec into a value transform. A nil spec,
// empty name, or unknown name yields nil: passthrough to the next stage.
func BuildFormat(spec *FormatSpec) ValueFunc {
	if spec == nil || spec.Name == "" {
		return nil
	}
	factory, ok := Format(spec.Name)
	if !ok {
		return nil
	}
	return factory(spec.Options)
}

// BuildTruncate resolves a truncation spec into a pipeline stage. A nil or
// unknown spec yields nil.
func BuildTruncate(spec *TruncateSpec) Stage {
	if spec == nil || spec.Name == "" {
		return nil
	}
	factory, ok := Truncate(spec.Name)
	if !ok {
		return nil
	}
	return func(prev Func) Func {
		return factory(spec.Options, prev)
	}
}

// Formats returns all registered formatter names (sorted).
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(formatRegistry))
	for name := range formatRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
