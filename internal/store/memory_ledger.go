package store

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-finance-tracker/models"
)

// memoryTable is a [RecordStore] kept in a map. All tables of one ledger
// share the ledger's mutex.
type memoryTable[T models.SyncableRecord] struct {
	mu   *sync.RWMutex
	rows map[string]T
}

func newMemoryTable[T models.SyncableRecord](mu *sync.RWMutex) *memoryTable[T] {
	return &memoryTable[T]{mu: mu, rows: make(map[string]T)}
}

func (t *memoryTable[T]) GetByID(_ context.Context, id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	record, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrRecordNotFound
	}
	return record, nil
}

func (t *memoryTable[T]) Insert(_ context.Context, record T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[record.GetID()]; ok {
		return ErrRecordAlreadyExists
	}
	t.rows[record.GetID()] = record
	return nil
}

func (t *memoryTable[T]) Update(_ context.Context, record T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	stored, ok := t.rows[record.GetID()]
	if !ok {
		return ErrRecordNotFound
	}
	t.rows[record.GetID()] = keepIdentity(record, stored)
	return nil
}

func (t *memoryTable[T]) Delete(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return ErrRecordNotFound
	}
	delete(t.rows, id)
	return nil
}

func (t *memoryTable[T]) FindSince(_ context.Context, userID string, since time.Time) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	results := make([]T, 0)
	for _, record := range t.rows {
		if record.GetUserID() == userID && record.GetUpdatedAt().After(since) {
			results = append(results, record)
		}
	}

	slices.SortFunc(results, func(a, b T) int {
		if c := a.GetUpdatedAt().Compare(b.GetUpdatedAt()); c != 0 {
			return c
		}
		return strings.Compare(a.GetID(), b.GetID())
	})

	return results, nil
}

// keepIdentity returns record with the owner and creation time of stored,
// mirroring an UPDATE that never touches those columns.
func keepIdentity[T models.SyncableRecord](record, stored T) T {
	switch r := any(record).(type) {
	case models.Account:
		r.UserID, r.CreatedAt = stored.GetUserID(), stored.GetCreatedAt()
		return any(r).(T)
	case models.Transaction:
		r.UserID, r.CreatedAt = stored.GetUserID(), stored.GetCreatedAt()
		return any(r).(T)
	case models.Budget:
		r.UserID, r.CreatedAt = stored.GetUserID(), stored.GetCreatedAt()
		return any(r).(T)
	case models.Category:
		r.UserID, r.CreatedAt = stored.GetUserID(), stored.GetCreatedAt()
		return any(r).(T)
	}
	return record
}

type memoryTransactions struct {
	*memoryTable[models.Transaction]
}

func (t *memoryTransactions) Patch(_ context.Context, id string, update models.TransactionUpdate) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	stored, ok := t.rows[id]
	if !ok {
		return ErrRecordNotFound
	}
	t.rows[id] = stored.Apply(update)
	return nil
}

// MemoryLedger is a [LedgerStore] held in process memory. It backs the
// "memory://" DSN and the service tests.
//
// RunAtomic holds the ledger's write lock for the whole unit, runs fn
// against a staged copy and swaps the copy in only when fn succeeds.
type MemoryLedger struct {
	mu     *sync.RWMutex
	staged bool

	accounts     *memoryTable[models.Account]
	transactions *memoryTransactions
	budgets      *memoryTable[models.Budget]
	categories   *memoryTable[models.Category]
}

// NewMemoryLedger returns an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return newMemoryLedger(&sync.RWMutex{}, false)
}

func newMemoryLedger(mu *sync.RWMutex, staged bool) *MemoryLedger {
	return &MemoryLedger{
		mu:           mu,
		staged:       staged,
		accounts:     newMemoryTable[models.Account](mu),
		transactions: &memoryTransactions{newMemoryTable[models.Transaction](mu)},
		budgets:      newMemoryTable[models.Budget](mu),
		categories:   newMemoryTable[models.Category](mu),
	}
}

func (m *MemoryLedger) Accounts() RecordStore[models.Account] { return m.accounts }
func (m *MemoryLedger) Transactions() TransactionStore { return m.transactions }
func (m *MemoryLedger) Budgets() RecordStore[models.Budget] { return m.budgets }
func (m *MemoryLedger) Categories() RecordStore[models.Category] { return m.categories }

func (m *MemoryLedger) RunAtomic(ctx context.Context, fn func(tx LedgerStore) error) error {
	if m.staged {
		return fn(m)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	stage := newMemoryLedger(&sync.RWMutex{}, true)
	stage.accounts.rows = maps.Clone(m.accounts.rows)
	stage.transactions.rows = maps.Clone(m.transactions.rows)
	stage.budgets.rows = maps.Clone(m.budgets.rows)
	stage.categories.rows = maps.Clone(m.categories.rows)

	if err := fn(stage); err != nil {
		return err
	}

	m.accounts.rows = stage.accounts.rows
	m.transactions.rows = stage.transactions.rows
	m.budgets.rows = stage.budgets.rows
	m.categories.rows = stage.categories.rows

	return nil
}
