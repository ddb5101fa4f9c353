package workers

import (
	"context"

	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/service"
)

type Workers struct {
	workers []Worker
}

func NewWorkers(services *service.ClientServices, cfg config.ClientWorkers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newSyncWorker(services.SyncJob, cfg.SyncInterval, logger),
		},
	}
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Stop stops workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
