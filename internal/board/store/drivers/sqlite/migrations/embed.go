// Package migrations embeds the SQL migration files so they ship inside the
// binary and ApplyMigrations needs no filesystem access.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
