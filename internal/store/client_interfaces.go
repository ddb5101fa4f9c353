package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-finance-tracker/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalLedger is the agent's offline copy of the user's ledger.
//
// Every record carries a dirty flag: local edits set it, records received
// from the server clear it. Dirty records are what the next sync pushes.
type LocalLedger interface {
	// SaveLocal stores records edited on this device and marks them dirty.
	SaveLocal(ctx context.Context, records ...models.SyncableRecord) error

	// ApplyRemote stores records received from the server as clean. A local
	// dirty row with a strictly newer updatedAt is kept for the next push.
	// Returns how many records were written.
	ApplyRemote(ctx context.Context, records ...models.SyncableRecord) (int, error)

	// DirtyBatch collects every dirty record into a batch, without device id
	// or watermark.
	DirtyBatch(ctx context.Context) (models.SyncBatch, error)

	// MarkSynced clears the dirty flag of the pushed records, unless a row
	// was edited again after it was pushed.
	MarkSynced(ctx context.Context, records ...models.SyncableRecord) error

	// Account returns a locally stored account, or [ErrRecordNotFound].
	Account(ctx context.Context, id string) (models.Account, error)

	// Watermark returns the serverTime of the last successful sync, nil
	// before the first one.
	Watermark(ctx context.Context) (*time.Time, error)
	SetWatermark(ctx context.Context, at time.Time) error

	// DeviceID returns the persistent id of this installation, creating it
	// on first use.
	DeviceID(ctx context.Context) (string, error)
}
