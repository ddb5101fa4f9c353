package client

import (
	"context"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/service"
)

// BackgroundWorkers is the part of workers.Workers the agent drives.
type BackgroundWorkers interface {
	Run(ctx context.Context)
	Stop()
}

type App struct {
	services *service.ClientServices
	workers  BackgroundWorkers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, workers BackgroundWorkers, logger *logger.Logger) *App {
	return &App{services: services, workers: workers, logger: logger}
}

// Run performs an initial sync round and keeps syncing in the background
// until ctx is cancelled. A failed initial round is logged; the device keeps
// working offline and the next round retries.
func (a *App) Run(ctx context.Context) error {
	report, err := a.services.SyncService.Sync(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("initial sync failed, continuing offline")
	} else {
		a.logger.Info().
			Int("pushed", report.Pushed).
			Int("applied", report.Applied).
			Dur("clock_skew", report.ClockSkew).
			Msg("initial sync finished")
	}

	a.workers.Run(ctx)
	defer a.workers.Stop()

	<-ctx.Done()
	a.logger.Info().Msg("sync agent shutting down")

	return nil
}
