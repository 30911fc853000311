// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/models"
)

// ticketRepository is the SQL-backed implementation of [TicketRepository]
// over the "it_tickets" table.
type ticketRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTicketRepository constructs a [TicketRepository] backed by the provided
// database connection and logger.
func NewTicketRepository(db *DB, logger *logger.Logger) TicketRepository {
	logger.Debug().Msg("creating ticket repository")
	return &ticketRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceAll swaps the full tickets table for the given rows in a single
// transaction.
func (r *ticketRepository) ReplaceAll(ctx context.Context, tickets []models.ITTicket) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.ReplaceAll").Msg("error: beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	deleteQuery, deleteArgs, err := buildDeleteAllQuery(r.db.Builder(), "it_tickets")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		log.Err(err).Str("func", "*ticketRepository.ReplaceAll").Msg("error: clearing tickets")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(tickets) > 0 {
		insertQuery, insertArgs, err := buildInsertTicketsQuery(r.db.Builder(), tickets)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			log.Err(err).Str("func", "*ticketRepository.ReplaceAll").Msg("error: inserting tickets")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*ticketRepository.ReplaceAll").Msg("error: committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// OpenStatsByPriority aggregates tickets per priority: how many are still
// open and the mean resolution time, priorities with the most open tickets
// first.
func (r *ticketRepository) OpenStatsByPriority(ctx context.Context) ([]models.TicketPriorityStat, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildTicketOpenStatsQuery(r.db.Builder())
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.OpenStatsByPriority").Msg("error: building stats query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.OpenStatsByPriority").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var stats []models.TicketPriorityStat
	for rows.Next() {
		var s models.TicketPriorityStat
		if err := rows.Scan(&s.Priority, &s.OpenCount, &s.MeanResolutionHours); err != nil {
			log.Err(err).Str("func", "*ticketRepository.OpenStatsByPriority").Msg("error: scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return stats, nil
}
