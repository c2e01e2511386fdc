// Package sqlite provides a SQLite-backed implementation of driven.IndexStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. The three index artifacts map to tables:
//
//   - terms: the vocabulary and IDF weight per column
//   - vectors: one compressed sparse row per document
//   - documents: path and content per row
//   - index_meta: build id, creation time and dimensions
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// The database is stored at <index dir>/index.db.
//
// # Thread Safety
//
// Save replaces every table in one transaction, so readers see either the old
// or the new index. SQLite runs in WAL mode.
package sqlite
