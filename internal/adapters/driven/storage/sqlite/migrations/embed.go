// Package migrations holds the schema of the SQLite index store.
package migrations

import "embed"

// FS holds the up and down scripts, applied in file name order.
//
//go:embed *.sql
var FS embed.FS
