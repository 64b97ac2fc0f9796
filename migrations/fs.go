// Package migrations embeds the SQL schema files so the server binary
// can migrate the database on startup without shipping loose files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
