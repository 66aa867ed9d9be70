// Package migrations embeds the goose SQL migrations of the service schema.
package migrations

import "embed"

// FS holds every migration at its root, ready for db.Migrate.
//
//go:embed *.sql
var FS embed.FS
