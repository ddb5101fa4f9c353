package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
)

const memoryDSN = "memory://"

// Storages holds the ledger backend selected by the configured DSN.
type Storages struct {
	Ledger LedgerStore

	db *DB
}

// NewStorages opens the backend named by cfg.DB.DSN: "memory://" keeps the
// ledger in process memory, "postgres://" and "postgresql://" connect to
// PostgreSQL and apply the schema migrations.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	dsn := cfg.DB.DSN

	switch {
	case strings.HasPrefix(dsn, memoryDSN):
		log.Info().Str("func", "store.NewStorages").Msg("using in-memory ledger")
		return &Storages{Ledger: NewMemoryLedger()}, nil

	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}

		if err = db.Migrate(); err != nil {
			log.Err(err).Str("func", "store.NewStorages").Msg("error applying migrations")
			db.Close()
			return nil, err
		}

		return &Storages{Ledger: NewLedgerRepository(db), db: db}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, schemeOf(dsn))
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func schemeOf(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i]
	}
	return dsn
}
