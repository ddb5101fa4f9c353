package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/service"
)

// syncWorker drives the periodic push/pull of the local ledger.
type syncWorker struct {
	job      service.ClientSyncJob
	interval time.Duration
	logger   *logger.Logger
}

func newSyncWorker(job service.ClientSyncJob, interval time.Duration, logger *logger.Logger) *syncWorker {
	return &syncWorker{job: job, interval: interval, logger: logger}
}

func (w *syncWorker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("starting background sync")
	w.job.Start(ctx, w.interval)
}

func (w *syncWorker) Stop() {
	w.job.Stop()
	w.logger.Info().Msg("background sync stopped")
}
