package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

// Migrate applies all pending schema migrations for the given driver.
// Each backend keeps its own migration directory because the DDL differs
// (AUTOINCREMENT vs BIGSERIAL, timestamp types).
func Migrate(db *sql.DB, driver string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	var dialect, dir string
	switch driver {
	case "sqlite3":
		dialect, dir = "sqlite3", "sqlite"
	case "pgx":
		dialect, dir = "pgx", "postgres"
	default:
		return fmt.Errorf("migration error: unsupported driver %q", driver)
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
