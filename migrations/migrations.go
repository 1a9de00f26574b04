// Package migrations embeds the SQL schema files for the storage backends.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
