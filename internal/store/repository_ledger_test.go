package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/models"
)

const (
	selectAccountByIDSQL     = `SELECT id, user_id, name, type, currency, opening_balance, is_deleted, created_at, updated_at FROM accounts WHERE id = $1`
	selectTransactionByIDSQL = `SELECT id, user_id, account_id, category_id, type, amount, note, transaction_date, linked_transaction_id, is_deleted, created_at, updated_at FROM transactions WHERE id = $1`
)

var accountColumns = []string{
	"id", "user_id", "name", "type", "currency", "opening_balance",
	"is_deleted", "created_at", "updated_at",
}

var transactionColumns = []string{
	"id", "user_id", "account_id", "category_id", "type", "amount", "note",
	"transaction_date", "linked_transaction_id", "is_deleted", "created_at", "updated_at",
}

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
}

func newTestLedger(t *testing.T) (LedgerStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewLedgerRepository(newDBFromSQL(db)), mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestRecordRepository_GetByID(t *testing.T) {
	created := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	t.Run("found", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectAccountByIDSQL)).
			WithArgs("acc-1").
			WillReturnRows(sqlmock.NewRows(accountColumns).
				AddRow("acc-1", "user-1", "Wallet", "CASH", "USD", "125.50", false, created, updated))

		got, err := ledger.Accounts().GetByID(testContext(), "acc-1")
		require.NoError(t, err)

		assert.Equal(t, "acc-1", got.ID)
		assert.Equal(t, "user-1", got.UserID)
		assert.Equal(t, models.AccountCash, got.Type)
		assert.True(t, decimal.RequireFromString("125.5").Equal(got.OpeningBalance))
		assert.Equal(t, updated, got.UpdatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nullable columns", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectTransactionByIDSQL)).
			WithArgs("tx-1").
			WillReturnRows(sqlmock.NewRows(transactionColumns).
				AddRow("tx-1", "user-1", "acc-1", nil, "EXPENSE", "9.99", nil, created, nil, false, created, updated))

		got, err := ledger.Transactions().GetByID(testContext(), "tx-1")
		require.NoError(t, err)

		assert.Nil(t, got.CategoryID)
		assert.Nil(t, got.Note)
		assert.Nil(t, got.LinkedTransactionID)
		assert.Equal(t, models.TransactionExpense, got.Type)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectAccountByIDSQL)).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(accountColumns))

		_, err := ledger.Accounts().GetByID(testContext(), "missing")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("driver error", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectAccountByIDSQL)).
			WithArgs("acc-1").
			WillReturnError(errors.New("connection reset"))

		_, err := ledger.Accounts().GetByID(testContext(), "acc-1")
		assert.ErrorIs(t, err, ErrScanningRow)
	})
}

func TestRecordRepository_Insert(t *testing.T) {
	account := models.Account{
		SyncMeta: models.SyncMeta{ID: "acc-1", UserID: "user-1", CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:     "Wallet",
		Type:     models.AccountCash,
		Currency: "USD",
	}

	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "success"},
		{name: "unique violation", execErr: pgError(pgerrcode.UniqueViolation), wantErr: ErrRecordAlreadyExists},
		{name: "foreign key violation", execErr: pgError(pgerrcode.ForeignKeyViolation), wantErr: ErrReferencedRecordMissing},
		{name: "other error", execErr: errors.New("boom"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, mock := newTestLedger(t)

			exp := mock.ExpectExec(regexp.QuoteMeta(
				`INSERT INTO accounts (id,user_id,name,type,currency,opening_balance,is_deleted,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`)).
				WithArgs("acc-1", "user-1", "Wallet", "CASH", "USD", sqlmock.AnyArg(), false, sqlmock.AnyArg(), sqlmock.AnyArg())
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := ledger.Accounts().Insert(testContext(), account)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRecordRepository_Update(t *testing.T) {
	category := models.Category{
		SyncMeta: models.SyncMeta{ID: "cat-1", UserID: "user-1", UpdatedAt: time.Now()},
		Name:     "Food",
		Type:     models.CategoryExpense,
	}
	updateSQL := `UPDATE categories SET is_deleted = $1, name = $2, type = $3, updated_at = $4 WHERE id = $5`

	t.Run("overwrites mutable columns", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectExec(regexp.QuoteMeta(updateSQL)).
			WithArgs(false, "Food", "EXPENSE", sqlmock.AnyArg(), "cat-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, ledger.Categories().Update(testContext(), category))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows affected", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectExec(regexp.QuoteMeta(updateSQL)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := ledger.Categories().Update(testContext(), category)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestRecordRepository_Delete(t *testing.T) {
	ledger, mock := newTestLedger(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM budgets WHERE id = $1`)).
		WithArgs("bud-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM budgets WHERE id = $1`)).
		WithArgs("bud-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, ledger.Budgets().Delete(testContext(), "bud-1"))
	assert.ErrorIs(t, ledger.Budgets().Delete(testContext(), "bud-2"), ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_FindSince(t *testing.T) {
	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	findSQL := `SELECT id, user_id, category_id, amount, month, is_deleted, created_at, updated_at FROM budgets WHERE user_id = $1 AND updated_at > $2 ORDER BY updated_at ASC, id ASC`
	columns := []string{"id", "user_id", "category_id", "amount", "month", "is_deleted", "created_at", "updated_at"}

	t.Run("returns rows in order including tombstones", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectQuery(regexp.QuoteMeta(findSQL)).
			WithArgs("user-1", since).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("bud-1", "user-1", "cat-1", "100", "2026-02", false, since, since.Add(time.Minute)).
				AddRow("bud-2", "user-1", "cat-2", "50", "2026-02", true, since, since.Add(2*time.Minute)))

		got, err := ledger.Budgets().FindSince(testContext(), "user-1", since)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "bud-1", got[0].ID)
		assert.True(t, got[1].IsDeleted)
		assert.Equal(t, "2026-02", got[1].Month)
	})

	t.Run("empty result is not nil", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectQuery(regexp.QuoteMeta(findSQL)).
			WillReturnRows(sqlmock.NewRows(columns))

		got, err := ledger.Budgets().FindSince(testContext(), "user-1", since)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("query error", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectQuery(regexp.QuoteMeta(findSQL)).
			WillReturnError(errors.New("boom"))

		_, err := ledger.Budgets().FindSince(testContext(), "user-1", since)
		assert.ErrorIs(t, err, ErrExecutingQuery)
	})

	t.Run("row iteration error", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectQuery(regexp.QuoteMeta(findSQL)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("bud-1", "user-1", "cat-1", "100", "2026-02", false, since, since.Add(time.Minute)).
				RowError(0, errors.New("broken row")))

		_, err := ledger.Budgets().FindSince(testContext(), "user-1", since)
		assert.ErrorIs(t, err, ErrScanningRows)
	})
}

func TestTransactionRepository_Patch(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("writes only set fields", func(t *testing.T) {
		ledger, mock := newTestLedger(t)
		linked := "tx-2"

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE transactions SET linked_transaction_id = $1, updated_at = $2 WHERE id = $3`)).
			WithArgs("tx-2", now, "tx-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := ledger.Transactions().Patch(testContext(), "tx-1", models.TransactionUpdate{
			LinkedTransactionID: &linked,
			UpdatedAt:           now,
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update", func(t *testing.T) {
		ledger, _ := newTestLedger(t)

		err := ledger.Transactions().Patch(testContext(), "tx-1", models.TransactionUpdate{})
		assert.ErrorIs(t, err, ErrBuildingSQLQuery)
	})

	t.Run("missing row", func(t *testing.T) {
		ledger, mock := newTestLedger(t)
		deleted := true

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE transactions SET is_deleted = $1 WHERE id = $2`)).
			WithArgs(true, "tx-9").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := ledger.Transactions().Patch(testContext(), "tx-9", models.TransactionUpdate{IsDeleted: &deleted})
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestLedgerRepository_RunAtomic(t *testing.T) {
	deleteSQL := regexp.QuoteMeta(`DELETE FROM transactions WHERE id = $1`)

	deleteBoth := func(tx LedgerStore) error {
		if err := tx.Transactions().Delete(testContext(), "tx-1"); err != nil {
			return err
		}
		return tx.Transactions().Delete(testContext(), "tx-2")
	}

	t.Run("commits on success", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).WithArgs("tx-1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(deleteSQL).WithArgs("tx-2").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, ledger.RunAtomic(testContext(), deleteBoth))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).WithArgs("tx-1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(deleteSQL).WithArgs("tx-2").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := ledger.RunAtomic(testContext(), deleteBoth)
		assert.ErrorIs(t, err, ErrRecordNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retries serialization failures", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).WithArgs("tx-1").WillReturnError(pgError(pgerrcode.SerializationFailure))
		mock.ExpectRollback()
		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).WithArgs("tx-1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(deleteSQL).WithArgs("tx-2").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, ledger.RunAtomic(testContext(), deleteBoth))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		for range maxAtomicAttempts {
			mock.ExpectBegin()
			mock.ExpectExec(deleteSQL).WithArgs("tx-1").WillReturnError(pgError(pgerrcode.DeadlockDetected))
			mock.ExpectRollback()
		}

		err := ledger.RunAtomic(testContext(), deleteBoth)
		require.Error(t, err)
		assert.Equal(t, pgerrcode.DeadlockDetected, postgresError(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call joins the open transaction", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).WithArgs("tx-1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(deleteSQL).WithArgs("tx-2").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := ledger.RunAtomic(testContext(), func(tx LedgerStore) error {
			return tx.RunAtomic(testContext(), deleteBoth)
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		ledger, mock := newTestLedger(t)

		mock.ExpectBegin().WillReturnError(errors.New("no connection"))

		err := ledger.RunAtomic(testContext(), deleteBoth)
		assert.ErrorIs(t, err, ErrBeginningTransaction)
	})
}
