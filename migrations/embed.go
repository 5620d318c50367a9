// Package migrations embeds the SQL schema migrations into the binary.
//
// Importing this package registers the files with the database package,
// so the service can migrate without the SQL present on disk.
package migrations

import (
	"embed"

	"github.com/nerrad567/bakery-core/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
