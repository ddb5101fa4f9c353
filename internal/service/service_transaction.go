package service

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/models"
)

// transactionService is the concrete implementation of TransactionService.
// Transfer pairs are delegated to the TransferWriter; ordinary transactions
// are written directly.
type transactionService struct {
	ledger    store.LedgerStore
	transfers *TransferWriter
	ids       IDGenerator
	clock     func() time.Time
}

func NewTransactionService(ledger store.LedgerStore, transfers *TransferWriter, ids IDGenerator) TransactionService {
	return &transactionService{
		ledger:    ledger,
		transfers: transfers,
		ids:       ids,
		clock:     time.Now,
	}
}

// CreateTransaction stores a new transaction with a server-generated id.
// A TRANSFER request creates the whole pair and returns the debit leg.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req models.TransactionCreate) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	if req.Type == models.TransactionTransfer {
		if req.ToAccountID == nil {
			return models.Transaction{}, ErrInvalidDataProvided
		}

		result, err := s.transfers.CreateTransfer(ctx, userID, models.TransferRequest{
			FromAccountID:   req.AccountID,
			ToAccountID:     *req.ToAccountID,
			Amount:          req.Amount,
			Note:            req.Note,
			TransactionDate: req.TransactionDate,
		})
		if err != nil {
			return models.Transaction{}, err
		}
		return result.FromTransaction, nil
	}

	if !req.Amount.IsPositive() {
		return models.Transaction{}, ErrInvalidAmount
	}

	if _, err := s.transfers.activeAccount(ctx, userID, req.AccountID); err != nil {
		return models.Transaction{}, err
	}

	now := s.clock().UTC()
	date := now
	if req.TransactionDate != nil {
		date = *req.TransactionDate
	}

	t := models.Transaction{
		SyncMeta: models.SyncMeta{
			ID:        s.ids.Generate(),
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		AccountID:       req.AccountID,
		CategoryID:      req.CategoryID,
		Type:            req.Type,
		Amount:          req.Amount,
		Note:            req.Note,
		TransactionDate: date,
	}

	if err := s.ledger.Transactions().Insert(ctx, t); err != nil {
		log.Err(err).
			Str("func", "transactionService.CreateTransaction").
			Str("user_id", userID).
			Msg("failed to insert transaction")
		return models.Transaction{}, err
	}

	return t, nil
}

// GetTransaction returns the user's live transaction.
func (s *transactionService) GetTransaction(ctx context.Context, userID, id string) (models.Transaction, error) {
	return s.liveTransaction(ctx, userID, id)
}

// ListTransactions returns the user's live transactions matching filter,
// newest transactionDate first.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, filter models.TransactionFilter) ([]models.Transaction, error) {
	all, err := s.ledger.Transactions().FindSince(ctx, userID, time.Time{})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "transactionService.ListTransactions").
			Str("user_id", userID).
			Msg("failed to read transactions")
		return nil, err
	}

	result := make([]models.Transaction, 0, len(all))
	for _, t := range all {
		if !t.IsDeleted && filter.Match(t) {
			result = append(result, t)
		}
	}

	slices.SortFunc(result, func(a, b models.Transaction) int {
		return cmp.Or(b.TransactionDate.Compare(a.TransactionDate), cmp.Compare(a.ID, b.ID))
	})
	return result, nil
}

// UpdateTransaction applies a partial update to an ordinary transaction.
// Transfer legs are immutable and yield ErrTransferCannotBeModified without
// any write.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, id string, update models.TransactionUpdate) (models.Transaction, error) {
	current, err := s.liveTransaction(ctx, userID, id)
	if err != nil {
		return models.Transaction{}, err
	}

	if current.IsTransfer() {
		return models.Transaction{}, ErrTransferCannotBeModified
	}

	if update.Amount != nil && !update.Amount.IsPositive() {
		return models.Transaction{}, ErrInvalidAmount
	}

	if update.AccountID != nil && *update.AccountID != current.AccountID {
		if _, err = s.transfers.activeAccount(ctx, userID, *update.AccountID); err != nil {
			return models.Transaction{}, err
		}
	}

	// links and tombstones are managed by the ledger itself
	update.LinkedTransactionID = nil
	update.IsDeleted = nil
	update.UpdatedAt = s.clock().UTC()

	if err = s.ledger.Transactions().Patch(ctx, id, update); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "transactionService.UpdateTransaction").
			Str("user_id", userID).
			Str("id", id).
			Msg("failed to patch transaction")
		return models.Transaction{}, err
	}

	return current.Apply(update), nil
}

// DeleteTransaction removes the transaction, and its partner leg for a
// transfer, in one unit.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, id string) error {
	current, err := s.liveTransaction(ctx, userID, id)
	if err != nil {
		return err
	}

	if err = s.transfers.Remove(ctx, current); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "transactionService.DeleteTransaction").
			Str("user_id", userID).
			Str("id", id).
			Msg("failed to delete transaction")
		return err
	}

	return nil
}

func (s *transactionService) CreateTransfer(ctx context.Context, userID string, req models.TransferRequest) (models.TransferResult, error) {
	return s.transfers.CreateTransfer(ctx, userID, req)
}

func (s *transactionService) liveTransaction(ctx context.Context, userID, id string) (models.Transaction, error) {
	t, err := s.ledger.Transactions().GetByID(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.Transaction{}, ErrTransactionNotFound
	}
	if err != nil {
		return models.Transaction{}, err
	}

	if t.UserID != userID || t.IsDeleted {
		return models.Transaction{}, ErrTransactionNotFound
	}

	return t, nil
}
