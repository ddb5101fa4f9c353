// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/models"
)

// syncService is the concrete implementation of SyncService. It pushes the
// batch kind by kind through the record synchronizers and then pulls the
// user's changes since the device's watermark.
type syncService struct {
	ledger    store.LedgerStore
	transfers *TransferWriter
	puller    *ChangePuller

	// categories decides whether pushed categories are applied and whether
	// categories are pulled.
	categories config.CategorySyncMode

	// pullOverlap moves the pull watermark back to re-deliver records
	// committed around the previous serverTime.
	pullOverlap time.Duration

	clock func() time.Time
}

// NewSyncService constructs a SyncService over ledger. Transfer legs pushed
// by devices are written through transfers.
func NewSyncService(ledger store.LedgerStore, transfers *TransferWriter, cfg config.Sync) SyncService {
	return &syncService{
		ledger:      ledger,
		transfers:   transfers,
		puller:      NewChangePuller(ledger, cfg.Categories),
		categories:  cfg.Categories,
		pullOverlap: cfg.PullOverlap,
		clock:       time.Now,
	}
}

// Sync implements SyncService.
//
// serverTime is captured once, before any write, and returned both as
// serverTime and syncedAt: the device sends it back as lastSyncAt next time.
// Per-record failures never fail the round; they are reported as rejected.
// A failed pull fails the round, since a partial pull would let the device
// advance its watermark past records it never received.
func (s *syncService) Sync(ctx context.Context, userID string, batch models.SyncBatch) (models.SyncResult, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return models.SyncResult{}, ErrNoUserID
	}

	serverTime := s.clock().UTC()

	since := time.Unix(0, 0).UTC()
	if batch.LastSyncAt != nil {
		since = *batch.LastSyncAt
	}
	since = since.Add(-s.pullOverlap)

	result := models.SyncResult{
		ServerTime: serverTime,
		SyncedAt:   serverTime,
		Conflicts:  []models.ConflictReport{},
		Rejected:   []models.RejectedRecord{},
	}

	collect := func(out syncOutcome) {
		result.Conflicts = append(result.Conflicts, out.conflicts...)
		result.Rejected = append(result.Rejected, out.rejected...)
	}

	collect(newRecordSynchronizer(s.ledger.Accounts(), nil).Sync(ctx, userID, batch.Accounts))
	collect(newRecordSynchronizer[models.Transaction](
		s.ledger.Transactions(),
		newTransactionWriter(s.ledger, s.transfers, batch.Transactions),
	).Sync(ctx, userID, batch.Transactions))
	collect(newRecordSynchronizer(s.ledger.Budgets(), nil).Sync(ctx, userID, batch.Budgets))

	if s.categories == config.CategorySyncFull {
		collect(newRecordSynchronizer(s.ledger.Categories(), nil).Sync(ctx, userID, batch.Categories))
	} else if len(batch.Categories) > 0 {
		log.Debug().
			Str("func", "syncService.Sync").
			Int("categories", len(batch.Categories)).
			Str("mode", string(s.categories)).
			Msg("ignoring pushed categories")
	}

	changes, err := s.puller.Pull(ctx, userID, since)
	if err != nil {
		return models.SyncResult{}, err
	}
	result.Changes = changes

	log.Info().
		Str("func", "syncService.Sync").
		Str("user_id", userID).
		Str("device_id", batch.DeviceID).
		Int("pushed", len(batch.Accounts)+len(batch.Transactions)+len(batch.Budgets)+len(batch.Categories)).
		Int("conflicts", len(result.Conflicts)).
		Int("rejected", len(result.Rejected)).
		Time("since", since).
		Msg("sync round finished")

	return result, nil
}

// ServerTime implements SyncService.
func (s *syncService) ServerTime(context.Context) time.Time {
	return s.clock().UTC()
}
