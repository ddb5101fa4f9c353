package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-finance-tracker/internal/adapter"
	"github.com/MKhiriev/go-finance-tracker/internal/client"
	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/service"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/internal/workers"
	"github.com/MKhiriev/go-finance-tracker/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("finance-agent").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("finance-agent", cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	localStorage, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer localStorage.Close()

	services := service.NewClientServices(localStorage, serverAdapter, log)
	app := client.NewApp(services, workers.NewWorkers(services, cfg.Workers, log), log)

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	info := models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))

	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
