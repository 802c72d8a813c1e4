// Package migrations holds the goose migrations of the emoji table.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
