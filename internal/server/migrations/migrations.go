// Package migrations embeds the goose SQL migrations for the server's
// optional PostgreSQL store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
