// Package column resolves declared per-field metadata into render-ready
// column descriptors. Declarations live in a static registry keyed by a
// record-type name, populated at type-definition time; the resolver
// composes format and truncation stages per field and keeps its output
// referentially stable across re-evaluation.
package column

import (
	"sync"

	"github.com/leapstack-labs/listkit/pkg/render"
)

// DefaultPlaceholder substitutes for empty values when a column declares
// no default of its own.
const DefaultPlaceholder = "-"

// Metadata is the declared, per-field column description.
type Metadata struct {
	// Title is the column header.
	Title string
	// Key is the record field the column reads. Defaults to the declared
	// field name.
	Key string
	// Format names a registered formatter with its options.
	Format *render.FormatSpec
	// Amend substitutes the column default for non-useful values when no
	// format is declared.
	Amend bool
	// Default is the display value for empty cells. Defaults to
	// DefaultPlaceholder.
	Default string
	// Groups tags the field for group filtering. Untagged fields pass
	// every filter.
	Groups []string
	// Truncate names a registered truncation wrapper with its options.
	Truncate *render.TruncateSpec
}

// Field is one declared field: a name plus its metadata, in declaration
// order.
type Field struct {
	Name string
	Meta Metadata
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string][]Field)
)

// Register declares the ordered field metadata for a record type.
// Typically called from init() next to the type definition. Registering a
// name twice replaces the earlier declaration.
func Register(typeName string, fields []Field) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[typeName] = fields
}

// Fields returns the declaration for a record type.
func Fields(typeName string) ([]Field, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[typeName]
	return f, ok
}
