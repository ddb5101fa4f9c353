package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/models"
)

// transactionWriter is the recordWriter for pushed transactions. Ordinary
// transactions are written row by row; transfer legs only ever move as a
// pair through the TransferWriter.
type transactionWriter struct {
	ledger    store.LedgerStore
	transfers *TransferWriter

	// batch indexes the pushed transactions by id, for partner lookup
	batch   map[string]models.Transaction
	written map[string]bool
}

func newTransactionWriter(ledger store.LedgerStore, transfers *TransferWriter, batch []models.Transaction) *transactionWriter {
	index := make(map[string]models.Transaction, len(batch))
	for _, t := range batch {
		index[t.ID] = t
	}

	return &transactionWriter{
		ledger:    ledger,
		transfers: transfers,
		batch:     index,
		written:   make(map[string]bool),
	}
}

func (w *transactionWriter) handled(id string) bool {
	return w.written[id]
}

func (w *transactionWriter) create(ctx context.Context, userID string, t models.Transaction) error {
	if _, err := w.transfers.ownedAccount(ctx, userID, t.AccountID); err != nil {
		return err
	}

	if !t.IsTransfer() {
		return w.ledger.Transactions().Insert(ctx, t)
	}

	partner, err := w.partnerOf(ctx, userID, t)
	if err != nil {
		return err
	}

	debit, credit, err := models.ValidateTransferPair(t, partner)
	if err != nil {
		return fmt.Errorf("invalid transfer pair: %w", err)
	}

	if err = w.transfers.WriteLegs(ctx, debit, credit); err != nil {
		return err
	}

	w.written[t.ID] = true
	w.written[partner.ID] = true

	return nil
}

// partnerOf returns the other leg of a new transfer leg. It must come in the
// same batch and must not be stored yet.
func (w *transactionWriter) partnerOf(ctx context.Context, userID string, t models.Transaction) (models.Transaction, error) {
	if t.LinkedTransactionID == nil {
		return models.Transaction{}, ErrUnpairedTransferLeg
	}

	partner, ok := w.batch[*t.LinkedTransactionID]
	if !ok || partner.ID == t.ID {
		return models.Transaction{}, ErrUnpairedTransferLeg
	}

	_, err := w.ledger.Transactions().GetByID(ctx, partner.ID)
	if err == nil {
		return models.Transaction{}, ErrUnpairedTransferLeg
	}
	if !errors.Is(err, store.ErrRecordNotFound) {
		return models.Transaction{}, err
	}

	partner = partner.WithOwner(userID)
	if _, err = w.transfers.ownedAccount(ctx, userID, partner.AccountID); err != nil {
		return models.Transaction{}, err
	}

	return partner, nil
}

func (w *transactionWriter) overwrite(ctx context.Context, client, server models.Transaction) (*models.ConflictReport, error) {
	if !client.IsTransfer() && !server.IsTransfer() {
		if client.AccountID != server.AccountID {
			if _, err := w.transfers.ownedAccount(ctx, client.UserID, client.AccountID); err != nil {
				return nil, err
			}
		}
		return nil, w.ledger.Transactions().Update(ctx, client)
	}

	if !sameLedgerContent(client, server) {
		return newConflictReport(client, server, ReasonTransferImmutable), nil
	}

	if client.IsDeleted == server.IsDeleted {
		return nil, nil
	}

	if err := w.transfers.SetLegsDeleted(ctx, server, client.IsDeleted, client.UpdatedAt); err != nil {
		return nil, err
	}

	for _, id := range pairIDs(server) {
		w.written[id] = true
	}

	return nil, nil
}

// sameLedgerContent reports whether a and b differ at most in their
// bookkeeping fields (tombstone flag and timestamps).
func sameLedgerContent(a, b models.Transaction) bool {
	return a.AccountID == b.AccountID &&
		equalPtr(a.CategoryID, b.CategoryID) &&
		a.Type == b.Type &&
		a.Amount.Equal(b.Amount) &&
		equalPtr(a.Note, b.Note) &&
		a.TransactionDate.UnixMilli() == b.TransactionDate.UnixMilli() &&
		equalPtr(a.LinkedTransactionID, b.LinkedTransactionID)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
