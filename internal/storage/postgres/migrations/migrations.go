// Package migrations embeds the goose schema migrations for the relational
// backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
