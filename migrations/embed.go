// Package migrations embeds the goose SQL migrations so the server can apply
// them on start-up and integration tests can apply them to a test database.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
