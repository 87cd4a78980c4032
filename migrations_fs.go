package unified

import (
	"embed"
	"io/fs"
)

// migrationsFS holds the SQL schema for the unified stores. The statements
// are written to run unchanged on both postgres and sqlite.
//
//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the migration files rooted at the directory the
// persistence client expects.
func GetMigrationsFS() fs.FS {
	sub, err := fs.Sub(migrationsFS, "data/sql/migrations")
	if err != nil {
		return migrationsFS
	}
	return sub
}
