// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/MKhiriev/opsboard/internal/config"
	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/store"
)

// Loader imports the configured CSV feeds into their repositories.
// A feed with an empty path is disabled; a configured feed whose file is
// absent is skipped with a warning, so one missing export does not block
// the other dashboards.
type Loader struct {
	paths     config.CSV
	incidents store.IncidentRepository
	tickets   store.TicketRepository
	datasets  store.DatasetRepository
	logger    *logger.Logger
}

func NewLoader(paths config.CSV, incidents store.IncidentRepository, tickets store.TicketRepository, datasets store.DatasetRepository, logger *logger.Logger) *Loader {
	return &Loader{
		paths:     paths,
		incidents: incidents,
		tickets:   tickets,
		datasets:  datasets,
		logger:    logger,
	}
}

// Refresh re-imports every configured feed. Each feed is loaded
// independently and the errors are joined, so a malformed tickets file
// still lets the incidents and datasets tables refresh.
func (l *Loader) Refresh(ctx context.Context) error {
	return errors.Join(
		l.refreshIncidents(ctx),
		l.refreshTickets(ctx),
		l.refreshDatasets(ctx),
	)
}

func (l *Loader) refreshIncidents(ctx context.Context) error {
	file, ok, err := l.open(l.paths.IncidentsPath, "incidents")
	if err != nil || !ok {
		return err
	}
	defer file.Close()

	incidents, err := ParseIncidents(file)
	if err != nil {
		l.logger.Err(err).Str("func", "*Loader.refreshIncidents").Msg("error: parsing incidents feed")
		return fmt.Errorf("incidents feed %s: %w", l.paths.IncidentsPath, err)
	}
	if err := l.incidents.ReplaceAll(ctx, incidents); err != nil {
		return fmt.Errorf("incidents feed %s: %w", l.paths.IncidentsPath, err)
	}

	l.logger.Info().Int("rows", len(incidents)).Str("path", l.paths.IncidentsPath).Msg("incidents feed imported")
	return nil
}

func (l *Loader) refreshTickets(ctx context.Context) error {
	file, ok, err := l.open(l.paths.TicketsPath, "tickets")
	if err != nil || !ok {
		return err
	}
	defer file.Close()

	tickets, err := ParseTickets(file)
	if err != nil {
		l.logger.Err(err).Str("func", "*Loader.refreshTickets").Msg("error: parsing tickets feed")
		return fmt.Errorf("tickets feed %s: %w", l.paths.TicketsPath, err)
	}
	if err := l.tickets.ReplaceAll(ctx, tickets); err != nil {
		return fmt.Errorf("tickets feed %s: %w", l.paths.TicketsPath, err)
	}

	l.logger.Info().Int("rows", len(tickets)).Str("path", l.paths.TicketsPath).Msg("tickets feed imported")
	return nil
}

func (l *Loader) refreshDatasets(ctx context.Context) error {
	file, ok, err := l.open(l.paths.DatasetsPath, "datasets")
	if err != nil || !ok {
		return err
	}
	defer file.Close()

	datasets, err := ParseDatasets(file)
	if err != nil {
		l.logger.Err(err).Str("func", "*Loader.refreshDatasets").Msg("error: parsing datasets feed")
		return fmt.Errorf("datasets feed %s: %w", l.paths.DatasetsPath, err)
	}
	if err := l.datasets.ReplaceAll(ctx, datasets); err != nil {
		return fmt.Errorf("datasets feed %s: %w", l.paths.DatasetsPath, err)
	}

	l.logger.Info().Int("rows", len(datasets)).Str("path", l.paths.DatasetsPath).Msg("datasets feed imported")
	return nil
}

// open returns the feed file and whether the feed should be loaded at all.
// Unconfigured and missing feeds report ok=false without an error.
func (l *Loader) open(path string, feed string) (*os.File, bool, error) {
	if path == "" {
		return nil, false, nil
	}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn().Str("path", path).Str("feed", feed).Msg("csv feed not found, skipping")
		return nil, false, nil
	}
	if err != nil {
		l.logger.Err(err).Str("func", "*Loader.open").Msg("error: opening csv feed")
		return nil, false, fmt.Errorf("%w: %w", ErrReadingFeed, err)
	}
	return file, true, nil
}
