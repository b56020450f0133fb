// Package migrations holds the goose migrations of the API database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
