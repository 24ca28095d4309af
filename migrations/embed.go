// Package migrations embeds the SQL migration files so they can be applied
// by repo.Open (AUTO_MIGRATE=true) and by integration test setup.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass it to goose.NewProvider; the server never reads migrations from disk.
//
//go:embed *.sql
var FS embed.FS
