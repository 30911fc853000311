package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/opsboard/internal/config"
	"github.com/MKhiriev/opsboard/internal/handler"
	"github.com/MKhiriev/opsboard/internal/ingest"
	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/server"
	"github.com/MKhiriev/opsboard/internal/service"
	"github.com/MKhiriev/opsboard/internal/store"
	"github.com/MKhiriev/opsboard/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("opsboard-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.Auth.Version == "" {
		cfg.Auth.Version = buildVersion
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = services.EnsureBootstrapAdmin(ctx, cfg.Auth, log); err != nil {
		log.Fatal().Err(err).Msg("error creating bootstrap admin")
	}

	loader := ingest.NewLoader(
		cfg.Storage.CSV,
		storages.IncidentRepository,
		storages.TicketRepository,
		storages.DatasetRepository,
		log,
	)
	if err = loader.Refresh(ctx); err != nil {
		// A malformed feed should not keep the server down. Loaded feeds
		// are usable, broken ones retry on the next refresh tick.
		log.Err(err).Msg("initial CSV import incomplete")
	}

	workers.NewWorkers(
		workers.NewCSVRefreshWorker(ctx, loader, cfg.Workers.RefreshInterval, log),
	).Run()

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
