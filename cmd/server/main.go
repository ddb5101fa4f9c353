package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/handler"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/server"
	"github.com/MKhiriev/go-finance-tracker/internal/service"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("finance-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.Version == "" {
		cfg.App.Version = orNA(buildVersion)
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

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
