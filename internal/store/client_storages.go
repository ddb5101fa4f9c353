package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
)

// ClientStorages groups the agent's storage into a single value that can
// be passed to the service layer.
type ClientStorages struct {
	// LocalLedger is the SQLite-backed offline ledger.
	LocalLedger LocalLedger

	db *DB
}

// NewClientStorages opens (creating if needed) the SQLite file named by
// cfg.DB.DSN, applies the local schema and returns the storages wired to it.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		LocalLedger: NewLocalLedgerRepository(db),
		db:          db,
	}, nil
}

// Close releases the SQLite connection.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
