// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the finance tracker sync server.
//
// The primary abstraction is [ServerAdapter], which decouples the sync agent
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrBadRequest] for 400, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-finance-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the sync
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Sync pushes batch and returns the server's answer: its serverTime, the
	// changes since batch.LastSyncAt, conflicts and rejected records.
	Sync(ctx context.Context, batch models.SyncBatch) (models.SyncResult, error)

	// ServerTime returns the server clock. The agent compares it with its own
	// clock to correct the timestamps it writes.
	ServerTime(ctx context.Context) (time.Time, error)

	// CreateTransfer asks the server to create a transfer pair online.
	CreateTransfer(ctx context.Context, req models.TransferRequest) (models.TransferResult, error)
}
