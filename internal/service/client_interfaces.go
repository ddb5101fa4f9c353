package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-finance-tracker/models"
)

// ClientSyncService is the device side of synchronization. It owns the
// local ledger's dirty records and the sync watermark.
type ClientSyncService interface {
	// Sync runs one round: push dirty records, apply the server's changes
	// and advance the watermark. Records the server rejected stay dirty.
	Sync(ctx context.Context) (SyncReport, error)

	// RecordTransfer writes both legs of a transfer to the local ledger
	// without contacting the server. They are pushed as a pair on the next
	// Sync.
	RecordTransfer(ctx context.Context, req models.TransferRequest) (models.TransferResult, error)

	// Transfer creates the transfer on the server and stores the returned
	// legs locally. When the server cannot take it (unreachable, or it does
	// not know an account yet) the transfer is recorded offline instead.
	Transfer(ctx context.Context, req models.TransferRequest) (models.TransferResult, error)
}

// ClientSyncJob runs ClientSyncService.Sync periodically in the background.
type ClientSyncJob interface {
	// Start launches the job. A running job is stopped first.
	Start(ctx context.Context, interval time.Duration)
	// Stop cancels the job and waits for the running round to finish.
	Stop()
}

// SyncReport summarizes one client sync round.
type SyncReport struct {
	Pushed    int
	Applied   int
	Conflicts int
	Rejected  int

	// ServerTime is the new watermark.
	ServerTime time.Time

	// ClockSkew is server time minus device time, measured before the push.
	ClockSkew time.Duration
}
