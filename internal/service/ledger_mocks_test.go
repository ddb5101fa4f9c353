package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/models"
)

const (
	testUser  = "user-1"
	otherUser = "user-2"
)

func testContext() context.Context {
	return logger.Nop().WithContext(context.Background())
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// sequenceIDs hands out the given ids in order.
type sequenceIDs struct {
	ids []string
}

func (g *sequenceIDs) Generate() string {
	id := g.ids[0]
	g.ids = g.ids[1:]
	return id
}

// transactionStoreMock overrides single methods of a real TransactionStore.
type transactionStoreMock struct {
	store.TransactionStore

	GetByIDFunc   func(ctx context.Context, id string) (models.Transaction, error)
	InsertFunc    func(ctx context.Context, t models.Transaction) error
	PatchFunc     func(ctx context.Context, id string, update models.TransactionUpdate) error
	FindSinceFunc func(ctx context.Context, userID string, since time.Time) ([]models.Transaction, error)
}

func (m *transactionStoreMock) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return m.TransactionStore.GetByID(ctx, id)
}

func (m *transactionStoreMock) Insert(ctx context.Context, t models.Transaction) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, t)
	}
	return m.TransactionStore.Insert(ctx, t)
}

func (m *transactionStoreMock) Patch(ctx context.Context, id string, update models.TransactionUpdate) error {
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, id, update)
	}
	return m.TransactionStore.Patch(ctx, id, update)
}

func (m *transactionStoreMock) FindSince(ctx context.Context, userID string, since time.Time) ([]models.Transaction, error) {
	if m.FindSinceFunc != nil {
		return m.FindSinceFunc(ctx, userID, since)
	}
	return m.TransactionStore.FindSince(ctx, userID, since)
}

// ledgerMock wraps a real ledger and lets a test decorate its transaction
// store, inside atomic units too.
type ledgerMock struct {
	store.LedgerStore

	TransactionsFunc func(inner store.TransactionStore) store.TransactionStore
}

func (l *ledgerMock) Transactions() store.TransactionStore {
	if l.TransactionsFunc != nil {
		return l.TransactionsFunc(l.LedgerStore.Transactions())
	}
	return l.LedgerStore.Transactions()
}

func (l *ledgerMock) RunAtomic(ctx context.Context, fn func(tx store.LedgerStore) error) error {
	return l.LedgerStore.RunAtomic(ctx, func(tx store.LedgerStore) error {
		return fn(&ledgerMock{LedgerStore: tx, TransactionsFunc: l.TransactionsFunc})
	})
}

func newTestTransferWriter(ledger store.LedgerStore, now time.Time, ids ...string) *TransferWriter {
	w := NewTransferWriter(ledger, &sequenceIDs{ids: ids}, config.Ledger{})
	w.clock = fixedClock(now)
	return w
}

func seedAccount(t *testing.T, ledger store.LedgerStore, id, userID, name string) models.Account {
	t.Helper()
	created := at("2025-01-01T00:00:00Z")
	account := models.Account{
		SyncMeta:       models.SyncMeta{ID: id, UserID: userID, CreatedAt: created, UpdatedAt: created},
		Name:           name,
		Type:           models.AccountBank,
		Currency:       "USD",
		OpeningBalance: decimal.Zero,
	}
	require.NoError(t, ledger.Accounts().Insert(testContext(), account))
	return account
}

func newTransaction(id, accountID string, amount string, updatedAt time.Time) models.Transaction {
	return models.Transaction{
		SyncMeta:        models.SyncMeta{ID: id, UserID: testUser, CreatedAt: updatedAt, UpdatedAt: updatedAt},
		AccountID:       accountID,
		Type:            models.TransactionExpense,
		Amount:          decimal.RequireFromString(amount),
		TransactionDate: updatedAt,
	}
}

func transferLeg(id, accountID, partnerID, amount string, updatedAt time.Time) models.Transaction {
	t := newTransaction(id, accountID, amount, updatedAt)
	t.Type = models.TransactionTransfer
	t.LinkedTransactionID = &partnerID
	return t
}
