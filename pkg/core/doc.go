// Package core defines the shared language of the listkit system.
//
// This package contains:
//   - Data vocabulary (Record, Payload, Pagination, PageResult)
//   - The caller-supplied fetch boundary (Fetch)
//   - Render output (Node) and the enum-lookup boundary (Enum)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
