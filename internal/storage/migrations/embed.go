package migrations

import "embed"

// FS holds the SQL migrations applied by the SQLite backend, in
// lexical order.
//
//go:embed *.sql
var FS embed.FS
