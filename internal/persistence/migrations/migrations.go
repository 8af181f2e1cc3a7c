// Package migrations embeds the goose schema migrations so the server
// binary carries them without a separate deploy artifact.
package migrations

import "embed"

// FS holds every *.sql migration, passed to goose.SetBaseFS.
//
//go:embed *.sql
var FS embed.FS
