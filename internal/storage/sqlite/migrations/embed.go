package migrations

import "embed"

// FS contains the embedded SQLite migrations for the kv table.
//
//go:embed *.sql
var FS embed.FS
