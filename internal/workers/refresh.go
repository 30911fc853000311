// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/opsboard/internal/logger"
)

// Refresher re-imports the domain data feeds.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// csvRefreshWorker periodically reloads the CSV feeds so the dashboards
// track file updates without a server restart.
type csvRefreshWorker struct {
	ctx       context.Context
	refresher Refresher
	interval  time.Duration
	logger    *logger.Logger
}

// NewCSVRefreshWorker builds a Worker that calls refresher.Refresh every
// interval until ctx is cancelled. A zero or negative interval disables the
// worker entirely; the initial import at startup is the caller's job.
func NewCSVRefreshWorker(ctx context.Context, refresher Refresher, interval time.Duration, logger *logger.Logger) Worker {
	return &csvRefreshWorker{
		ctx:       ctx,
		refresher: refresher,
		interval:  interval,
		logger:    logger,
	}
}

// Run starts the refresh loop in a background goroutine and returns
// immediately.
func (w *csvRefreshWorker) Run() {
	if w.interval <= 0 {
		w.logger.Info().Msg("csv refresh worker disabled")
		return
	}

	w.logger.Info().Dur("interval", w.interval).Msg("csv refresh worker started")

	go func() {
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-w.ctx.Done():
				w.logger.Info().Msg("csv refresh worker stopped")
				return
			case <-t.C:
				if err := w.refresher.Refresh(w.ctx); err != nil {
					w.logger.Err(err).Str("func", "*csvRefreshWorker.Run").Msg("error: refreshing csv feeds")
				}
			}
		}
	}()
}
