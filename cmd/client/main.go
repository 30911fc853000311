package main

import (
	"fmt"

	"github.com/MKhiriev/opsboard/internal/client"
	"github.com/MKhiriev/opsboard/internal/config"
	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewConsoleLogger("opsboard-console")

	cfg, err := config.GetConsoleConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	api, err := client.NewAPIClient(cfg.Adapter.HTTPAddress, cfg.Adapter.RequestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating api client")
	}

	ui := tui.New(api, log)

	app := client.NewApp(ui, log)
	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("console run error")
	}
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
