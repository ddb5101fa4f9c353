// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultSyncInterval   = time.Minute
	defaultLogMaxSizeMB   = 10
	defaultLogMaxBackups  = 3
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Sync.Categories == "" {
		cfg.Sync.Categories = CategorySyncPull
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = defaultSyncInterval
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = defaultLogMaxSizeMB
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = defaultLogMaxBackups
	}
}

// validate checks the invariants shared by the server and the sync agent.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Sync.Categories {
	case CategorySyncOff, CategorySyncPull, CategorySyncFull:
	default:
		return fmt.Errorf("%w: unknown category sync mode %q", ErrInvalidSyncConfigs, cfg.Sync.Categories)
	}

	if cfg.Sync.PullOverlap < 0 {
		return fmt.Errorf("%w: negative pull overlap", ErrInvalidSyncConfigs)
	}

	return nil
}

// validateServer checks the settings the HTTP server needs.
func (cfg *StructuredConfig) validateServer() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.HasPrefix(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.Token == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
