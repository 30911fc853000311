package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/migrations"
)

// DB wraps the shared *sql.DB handle together with everything that differs
// between the supported backends: the driver name, the placeholder format
// used by the squirrel statement builder, and the driver error classifier.
type DB struct {
	*sql.DB

	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator

	logger *logger.Logger
}

// Builder returns the squirrel statement builder configured with the
// placeholder format of the active backend ("?" for SQLite, "$1" for
// PostgreSQL).
func (db *DB) Builder() sq.StatementBuilderType {
	return db.builder
}

// Migrate applies all pending schema migrations for the active backend.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
