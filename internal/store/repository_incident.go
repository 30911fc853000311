// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/models"
)

// incidentRepository is the SQL-backed implementation of [IncidentRepository]
// over the "incidents" table.
type incidentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewIncidentRepository constructs an [IncidentRepository] backed by the
// provided database connection and logger.
func NewIncidentRepository(db *DB, logger *logger.Logger) IncidentRepository {
	logger.Debug().Msg("creating incident repository")
	return &incidentRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceAll swaps the full incidents table for the given rows in a single
// transaction. The CSV feed is the source of truth, so a refresh replaces
// rather than merges.
func (r *incidentRepository) ReplaceAll(ctx context.Context, incidents []models.SecurityIncident) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*incidentRepository.ReplaceAll").Msg("error: beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	deleteQuery, deleteArgs, err := buildDeleteAllQuery(r.db.Builder(), "incidents")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		log.Err(err).Str("func", "*incidentRepository.ReplaceAll").Msg("error: clearing incidents")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(incidents) > 0 {
		insertQuery, insertArgs, err := buildInsertIncidentsQuery(r.db.Builder(), incidents)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			log.Err(err).Str("func", "*incidentRepository.ReplaceAll").Msg("error: inserting incidents")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*incidentRepository.ReplaceAll").Msg("error: committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// TopOpenBySeverity returns at most limit non-closed incidents, the most
// severe and most recent first.
func (r *incidentRepository) TopOpenBySeverity(ctx context.Context, limit uint64) ([]models.SecurityIncident, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTopOpenIncidentsQuery(r.db.Builder(), limit)
	if err != nil {
		log.Err(err).Str("func", "*incidentRepository.TopOpenBySeverity").Msg("error: building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*incidentRepository.TopOpenBySeverity").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var incidents []models.SecurityIncident
	for rows.Next() {
		var i models.SecurityIncident
		if err := rows.Scan(&i.ID, &i.ExternalID, &i.Timestamp, &i.Severity, &i.IncidentType, &i.Status, &i.Description, &i.ReportedBy, &i.Asset); err != nil {
			log.Err(err).Str("func", "*incidentRepository.TopOpenBySeverity").Msg("error: scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		incidents = append(incidents, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return incidents, nil
}
