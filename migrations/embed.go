package migrations

import "embed"

// Files holds the forward-only SQL migrations compiled into the binary;
// internal/db applies any unapplied ones at startup.
//
//go:embed *.sql
var Files embed.FS
