package store

import (
	"database/sql"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
)

// DB is an opened SQL connection pool together with the error classifier
// and schema migrations of its driver.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	migrate            func(db *sql.DB) error
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations of the backend.
func (db *DB) Migrate() error {
	if db.migrate == nil {
		return nil
	}
	return db.migrate(db.DB)
}
