package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/opsboard/internal/config"
	"github.com/MKhiriev/opsboard/internal/logger"
)

// Storages bundles every repository the services depend on, all sharing one
// database connection.
type Storages struct {
	UserRepository     UserRepository
	IncidentRepository IncidentRepository
	TicketRepository   TicketRepository
	DatasetRepository  DatasetRepository

	db *DB
}

// NewStorages opens the database backend selected by cfg.Driver, applies
// pending migrations and constructs every repository on top of the shared
// connection.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg, log)
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		IncidentRepository: NewIncidentRepository(db, log),
		TicketRepository:   NewTicketRepository(db, log),
		DatasetRepository:  NewDatasetRepository(db, log),
		db:                 db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}
