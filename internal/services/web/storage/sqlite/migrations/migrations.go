// Package migrations embeds the draft store schema.
package migrations

import "embed"

// FS holds the SQL migration files in filename order.
//
//go:embed *.sql
var FS embed.FS
