package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/models"
)

// TransferWriter owns every write that touches a transfer pair. A pair is
// always written, toggled or removed inside one RunAtomic unit, so that no
// reader ever sees a single leg.
type TransferWriter struct {
	ledger     store.LedgerStore
	ids        IDGenerator
	clock      func() time.Time
	hardDelete bool
}

// NewTransferWriter constructs a TransferWriter. cfg.HardDelete switches
// deletion from tombstones to row removal.
func NewTransferWriter(ledger store.LedgerStore, ids IDGenerator, cfg config.Ledger) *TransferWriter {
	return &TransferWriter{
		ledger:     ledger,
		ids:        ids,
		clock:      time.Now,
		hardDelete: cfg.HardDelete,
	}
}

// CreateTransfer moves req.Amount from one of the user's accounts to
// another by writing a linked debit/credit pair.
//
// Both accounts must exist, be active and belong to userID; this is checked
// before anything is written.
func (w *TransferWriter) CreateTransfer(ctx context.Context, userID string, req models.TransferRequest) (models.TransferResult, error) {
	log := logger.FromContext(ctx)

	if !req.Amount.IsPositive() {
		return models.TransferResult{}, ErrInvalidAmount
	}
	if req.FromAccountID == req.ToAccountID {
		return models.TransferResult{}, ErrSameAccountTransfer
	}

	from, err := w.activeAccount(ctx, userID, req.FromAccountID)
	if err != nil {
		return models.TransferResult{}, err
	}
	to, err := w.activeAccount(ctx, userID, req.ToAccountID)
	if err != nil {
		return models.TransferResult{}, err
	}

	now := w.clock().UTC()
	date := now
	if req.TransactionDate != nil {
		date = *req.TransactionDate
	}

	debit, credit := models.TransferLegs{
		DebitID:         w.ids.Generate(),
		CreditID:        w.ids.Generate(),
		UserID:          userID,
		From:            from,
		To:              to,
		Amount:          req.Amount,
		Note:            req.Note,
		TransactionDate: date,
		Now:             now,
	}.Build()

	if err = w.WriteLegs(ctx, debit, credit); err != nil {
		log.Err(err).
			Str("func", "TransferWriter.CreateTransfer").
			Str("user_id", userID).
			Str("from_account_id", from.ID).
			Str("to_account_id", to.ID).
			Msg("failed to write transfer pair")
		return models.TransferResult{}, err
	}

	log.Info().
		Str("func", "TransferWriter.CreateTransfer").
		Str("user_id", userID).
		Str("transfer_id", debit.ID).
		Msg("transfer created")

	return models.TransferResult{
		TransferID:      debit.ID,
		FromTransaction: debit,
		ToTransaction:   credit,
		Amount:          req.Amount.Abs(),
		Status:          models.TransferStatusCompleted,
	}, nil
}

// WriteLegs stores a validated pair atomically: both legs are inserted
// without links first, then each is patched to point at the other.
func (w *TransferWriter) WriteLegs(ctx context.Context, debit, credit models.Transaction) error {
	return w.ledger.RunAtomic(ctx, func(tx store.LedgerStore) error {
		for _, leg := range []models.Transaction{debit, credit} {
			unlinked := leg
			unlinked.LinkedTransactionID = nil
			if err := tx.Transactions().Insert(ctx, unlinked); err != nil {
				return err
			}
		}

		if err := tx.Transactions().Patch(ctx, debit.ID, models.TransactionUpdate{LinkedTransactionID: &credit.ID}); err != nil {
			return err
		}
		return tx.Transactions().Patch(ctx, credit.ID, models.TransactionUpdate{LinkedTransactionID: &debit.ID})
	})
}

// SetLegsDeleted sets the tombstone flag of leg and of its linked partner
// in one unit, stamping both with updatedAt.
func (w *TransferWriter) SetLegsDeleted(ctx context.Context, leg models.Transaction, deleted bool, updatedAt time.Time) error {
	update := models.TransactionUpdate{IsDeleted: &deleted, UpdatedAt: updatedAt}

	return w.ledger.RunAtomic(ctx, func(tx store.LedgerStore) error {
		for _, id := range pairIDs(leg) {
			if err := tx.Transactions().Patch(ctx, id, update); err != nil {
				return fmt.Errorf("failed to update transfer leg %s: %w", id, err)
			}
		}
		return nil
	})
}

// Remove deletes a transaction according to the configured policy. For a
// transfer leg the partner is removed in the same unit.
func (w *TransferWriter) Remove(ctx context.Context, t models.Transaction) error {
	if !w.hardDelete {
		now := w.clock().UTC()
		if t.IsTransfer() {
			return w.SetLegsDeleted(ctx, t, true, now)
		}
		deleted := true
		return w.ledger.Transactions().Patch(ctx, t.ID, models.TransactionUpdate{IsDeleted: &deleted, UpdatedAt: now})
	}

	return w.ledger.RunAtomic(ctx, func(tx store.LedgerStore) error {
		for _, id := range pairIDs(t) {
			err := tx.Transactions().Delete(ctx, id)
			// the partner may already be gone
			if errors.Is(err, store.ErrRecordNotFound) && id != t.ID {
				continue
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// activeAccount returns the user's non-deleted account.
func (w *TransferWriter) activeAccount(ctx context.Context, userID, id string) (models.Account, error) {
	account, err := w.ownedAccount(ctx, userID, id)
	if err != nil {
		return models.Account{}, err
	}
	if account.IsDeleted {
		return models.Account{}, ErrAccountNotFound
	}
	return account, nil
}

// ownedAccount returns the user's account, tombstoned or not.
func (w *TransferWriter) ownedAccount(ctx context.Context, userID, id string) (models.Account, error) {
	account, err := w.ledger.Accounts().GetByID(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return models.Account{}, err
	}
	if account.UserID != userID {
		return models.Account{}, ErrAccountNotFound
	}
	return account, nil
}

func pairIDs(leg models.Transaction) []string {
	if leg.IsTransfer() && leg.LinkedTransactionID != nil && *leg.LinkedTransactionID != "" {
		return []string{leg.ID, *leg.LinkedTransactionID}
	}
	return []string{leg.ID}
}
