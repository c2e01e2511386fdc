// Package domain defines the core business entities for docask.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A source file's path and trimmed text
//   - TermModel: The frozen vocabulary and its IDF weights
//   - SparseVector: A compressed sparse row of TF-IDF weights
//   - Index: Model, vectors and metadata persisted as one unit
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
