// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// finance tracker server and sync agent. It aggregates all sub-configurations
// and is populated by merging values from environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token verification settings and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the ledger database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Sync holds the synchronization policy of the server.
	Sync Sync `envPrefix:"SYNC_"`

	// Ledger holds the transaction write policy.
	Ledger Ledger `envPrefix:"LEDGER_"`

	// Adapter holds the sync agent's outbound connection settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds the sync agent's log file settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to verify JWT bearer tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of every bearer token.
	// Empty disables the issuer check.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// Token is the bearer token the sync agent presents to the server.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// Version is the semantic version string of the running application.
	// Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the database backend.
type DB struct {
	// DSN selects and configures the backend. "postgres://…" opens PostgreSQL,
	// "memory://" keeps the ledger in process memory. For the sync agent it
	// is the SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// CategorySyncMode controls how categories take part in sync.
type CategorySyncMode string

const (
	// CategorySyncOff excludes categories from push and pull.
	CategorySyncOff CategorySyncMode = "off"
	// CategorySyncPull sends server-side category changes to devices but
	// ignores categories pushed by devices.
	CategorySyncPull CategorySyncMode = "pull"
	// CategorySyncFull synchronizes categories in both directions.
	CategorySyncFull CategorySyncMode = "full"
)

// Sync holds the synchronization policy.
type Sync struct {
	// Categories is one of "off", "pull" or "full". Defaults to "pull".
	// Env: SYNC_CATEGORIES
	Categories CategorySyncMode `env:"CATEGORIES"`

	// PullOverlap moves the pull watermark back by the given duration, so
	// records committed around the previous serverTime are delivered again.
	// Env: SYNC_PULL_OVERLAP
	PullOverlap time.Duration `env:"PULL_OVERLAP"`
}

// Ledger holds the transaction write policy.
type Ledger struct {
	// HardDelete removes rows on delete instead of writing tombstones.
	// Tombstones are required for deletions to reach other devices.
	// Env: LEDGER_HARD_DELETE
	HardDelete bool `env:"HARD_DELETE"`
}

// Adapter holds the sync agent's connection settings.
type Adapter struct {
	// HTTPAddress is the base address of the sync server
	// (e.g. "localhost:8080" or "https://api.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the sync agent's background sync.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Log holds the sync agent's rotating log file settings.
type Log struct {
	// File is the log file path. Empty places it next to the executable.
	// Env: LOG_FILE
	File string `env:"FILE"`

	// MaxSizeMB is the size at which the file is rotated.
	// Env: LOG_MAX_SIZE_MB
	MaxSizeMB int `env:"MAX_SIZE_MB"`

	// MaxBackups is the number of rotated files kept.
	// Env: LOG_MAX_BACKUPS
	MaxBackups int `env:"MAX_BACKUPS"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

// GetServerConfig returns the structured configuration after checking the
// settings the HTTP server cannot start without.
func GetServerConfig() (*StructuredConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validateServer()
}
