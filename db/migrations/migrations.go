// Package migrations embeds the goose SQL migrations for the sqlite schema.
package migrations

import "embed"

// Dir is the directory inside FS that holds the migration files.
const Dir = "sql"

// FS holds every migration file shipped with the binary.
//
//go:embed sql/*.sql
var FS embed.FS
