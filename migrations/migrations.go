// Package migrations embeds the postgres schema migrations so the migrate
// command works without a checkout of the repository.
package migrations

import "embed"

// FS holds the *.up.sql / *.down.sql pairs.
//
//go:embed *.sql
var FS embed.FS
