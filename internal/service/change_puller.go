package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/models"
)

// ChangePuller reads everything a device has not seen yet.
type ChangePuller struct {
	ledger     store.LedgerStore
	categories config.CategorySyncMode
}

func NewChangePuller(ledger store.LedgerStore, categories config.CategorySyncMode) *ChangePuller {
	return &ChangePuller{ledger: ledger, categories: categories}
}

// Pull returns the user's records of every kind updated strictly after
// since, tombstones included, each kind ordered by updatedAt then id.
// Categories are left empty when category sync is off.
func (p *ChangePuller) Pull(ctx context.Context, userID string, since time.Time) (models.SyncChanges, error) {
	changes := models.NewSyncChanges()
	var err error

	if changes.Accounts, err = pullKind(ctx, p.ledger.Accounts(), userID, since); err != nil {
		return models.SyncChanges{}, err
	}
	if changes.Transactions, err = pullKind(ctx, p.ledger.Transactions(), userID, since); err != nil {
		return models.SyncChanges{}, err
	}
	if changes.Budgets, err = pullKind(ctx, p.ledger.Budgets(), userID, since); err != nil {
		return models.SyncChanges{}, err
	}
	if p.categories != config.CategorySyncOff {
		if changes.Categories, err = pullKind(ctx, p.ledger.Categories(), userID, since); err != nil {
			return models.SyncChanges{}, err
		}
	}

	return changes, nil
}

func pullKind[T models.SyncableRecord](ctx context.Context, s store.RecordStore[T], userID string, since time.Time) ([]T, error) {
	records, err := s.FindSince(ctx, userID, since)
	if err != nil {
		var zero T
		logger.FromContext(ctx).Err(err).
			Str("func", "ChangePuller.Pull").
			Str("kind", string(zero.Kind())).
			Str("user_id", userID).
			Msg("failed to read changed records")
		return nil, fmt.Errorf("%w: %s: %w", ErrPullFailed, zero.Kind(), err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}
