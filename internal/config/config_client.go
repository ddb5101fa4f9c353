package config

import (
	"fmt"
	"time"
)

// ClientApp holds sync agent application settings.
type ClientApp struct {
	// Token is the bearer token presented to the sync server.
	Token string
	// Version is reported in the agent's logs.
	Version string
}

// ClientAdapter holds network settings used by the agent transport layer.
type ClientAdapter struct {
	// HTTPAddress is the sync server address.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the agent.
type ClientDB struct {
	// DSN is the SQLite connection string of the local ledger.
	DSN string
}

// ClientStorage groups agent storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers contains agent background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background sync runs.
	SyncInterval time.Duration
}

// ClientConfig is the top-level sync agent configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Log     Log
}

// GetClientConfig builds and validates the agent config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			Token:   cfg.App.Token,
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		Log:     cfg.Log,
	}
}
