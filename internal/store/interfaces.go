// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-finance-tracker/models"
)

// RecordStore is the persistence surface for one entity kind.
//
// Lookups by id are global: ids are client-generated UUIDs, and ownership
// checks are left to the caller so that a foreign record can be detected
// instead of silently recreated.
type RecordStore[T models.SyncableRecord] interface {
	// GetByID returns the record with the given id, or [ErrRecordNotFound].
	GetByID(ctx context.Context, id string) (T, error)

	// Insert stores record as-is, including its id and timestamps.
	// Returns [ErrRecordAlreadyExists] when the id is taken.
	Insert(ctx context.Context, record T) error

	// Update overwrites every field of the stored record except id, owner
	// and creation time. Returns [ErrRecordNotFound] when nothing matched.
	Update(ctx context.Context, record T) error

	// Delete removes the row. Returns [ErrRecordNotFound] when nothing matched.
	Delete(ctx context.Context, id string) error

	// FindSince returns the user's records with updatedAt strictly after
	// since, tombstones included, ordered by updatedAt then id.
	FindSince(ctx context.Context, userID string, since time.Time) ([]T, error)
}

// TransactionStore adds partial updates to the transaction [RecordStore].
type TransactionStore interface {
	RecordStore[models.Transaction]

	// Patch writes the non-nil fields of update (and update.UpdatedAt when
	// set) to the transaction with the given id.
	Patch(ctx context.Context, id string, update models.TransactionUpdate) error
}

// LedgerStore groups the per-kind stores of one backend.
type LedgerStore interface {
	Accounts() RecordStore[models.Account]
	Transactions() TransactionStore
	Budgets() RecordStore[models.Budget]
	Categories() RecordStore[models.Category]

	// RunAtomic runs fn so that either every write made through the tx
	// store commits or none does. Calling RunAtomic on tx runs fn inline.
	RunAtomic(ctx context.Context, fn func(tx LedgerStore) error) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
