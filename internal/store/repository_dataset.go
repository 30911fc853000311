// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/models"
)

// datasetRepository is the SQL-backed implementation of [DatasetRepository]
// over the "datasets" table.
type datasetRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDatasetRepository constructs a [DatasetRepository] backed by the
// provided database connection and logger.
func NewDatasetRepository(db *DB, logger *logger.Logger) DatasetRepository {
	logger.Debug().Msg("creating dataset repository")
	return &datasetRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceAll swaps the full datasets table for the given rows in a single
// transaction.
func (r *datasetRepository) ReplaceAll(ctx context.Context, datasets []models.Dataset) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.ReplaceAll").Msg("error: beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	deleteQuery, deleteArgs, err := buildDeleteAllQuery(r.db.Builder(), "datasets")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		log.Err(err).Str("func", "*datasetRepository.ReplaceAll").Msg("error: clearing datasets")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(datasets) > 0 {
		insertQuery, insertArgs, err := buildInsertDatasetsQuery(r.db.Builder(), datasets)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			log.Err(err).Str("func", "*datasetRepository.ReplaceAll").Msg("error: inserting datasets")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*datasetRepository.ReplaceAll").Msg("error: committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// LargestBySize returns at most limit datasets ordered by size descending.
func (r *datasetRepository) LargestBySize(ctx context.Context, limit uint64) ([]models.Dataset, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectLargestDatasetsQuery(r.db.Builder(), limit)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.LargestBySize").Msg("error: building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.LargestBySize").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var datasets []models.Dataset
	for rows.Next() {
		var d models.Dataset
		if err := rows.Scan(&d.DatasetID, &d.Name, &d.SizeBytes, &d.Rows, &d.Source); err != nil {
			log.Err(err).Str("func", "*datasetRepository.LargestBySize").Msg("error: scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		datasets = append(datasets, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return datasets, nil
}
