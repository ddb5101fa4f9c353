package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/models"
)

// maxAtomicAttempts bounds how many times RunAtomic re-runs a unit of work
// that failed with a retryable driver error.
const maxAtomicAttempts = 3

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// recordRepository is the PostgreSQL-backed [RecordStore] for one table.
type recordRepository[T models.SyncableRecord] struct {
	q     querier
	table recordTable[T]
}

func (r *recordRepository[T]) GetByID(ctx context.Context, id string) (T, error) {
	log := logger.FromContext(ctx)
	var zero T

	query, args, err := r.table.selectByIDQuery(id)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := r.table.scan(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.GetByID").
			Str("table", r.table.name).
			Str("id", id).
			Msg("failed to scan record row")
		return zero, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

func (r *recordRepository[T]) Insert(ctx context.Context, record T) error {
	log := logger.FromContext(ctx)

	query, args, err := r.table.insertQuery(record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "recordRepository.Insert").
			Str("table", r.table.name).
			Str("id", record.GetID()).
			Msg("failed to insert record")
		return mapPostgresError(err, ErrExecutingStatement)
	}

	return nil
}

func (r *recordRepository[T]) Update(ctx context.Context, record T) error {
	query, args, err := r.table.updateQuery(record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "recordRepository.Update", record.GetID(), query, args)
}

func (r *recordRepository[T]) Delete(ctx context.Context, id string) error {
	query, args, err := r.table.deleteQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "recordRepository.Delete", id, query, args)
}

func (r *recordRepository[T]) FindSince(ctx context.Context, userID string, since time.Time) ([]T, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.table.selectSinceQuery(userID, since)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.FindSince").
			Str("table", r.table.name).
			Str("user_id", userID).
			Msg("failed to execute query for changed records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]T, 0)
	for rows.Next() {
		record, scanErr := r.table.scan(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.FindSince").
				Str("table", r.table.name).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recordRepository.FindSince").
			Str("table", r.table.name).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

func (r *recordRepository[T]) execAffectingOne(ctx context.Context, fn, id, query string, args []any) error {
	log := logger.FromContext(ctx)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Str("table", r.table.name).
			Str("id", id).
			Msg("failed to execute statement")
		return mapPostgresError(err, ErrExecutingStatement)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

type transactionRepository struct {
	*recordRepository[models.Transaction]
}

func (r *transactionRepository) Patch(ctx context.Context, id string, update models.TransactionUpdate) error {
	query, args, err := buildPatchTransactionQuery(id, update)
	if err != nil {
		return err
	}

	return r.execAffectingOne(ctx, "transactionRepository.Patch", id, query, args)
}

// ledgerRepository is the PostgreSQL-backed [LedgerStore]. Inside RunAtomic
// the same type is rebuilt around the open *sql.Tx.
type ledgerRepository struct {
	db   *DB
	inTx bool

	accounts     *recordRepository[models.Account]
	transactions *transactionRepository
	budgets      *recordRepository[models.Budget]
	categories   *recordRepository[models.Category]
}

// NewLedgerRepository constructs a [LedgerStore] over the given PostgreSQL
// connection.
func NewLedgerRepository(db *DB) LedgerStore {
	return newLedgerRepository(db, db.DB, false)
}

func newLedgerRepository(db *DB, q querier, inTx bool) *ledgerRepository {
	return &ledgerRepository{
		db:           db,
		inTx:         inTx,
		accounts:     &recordRepository[models.Account]{q: q, table: accountsTable},
		transactions: &transactionRepository{&recordRepository[models.Transaction]{q: q, table: transactionsTable}},
		budgets:      &recordRepository[models.Budget]{q: q, table: budgetsTable},
		categories:   &recordRepository[models.Category]{q: q, table: categoriesTable},
	}
}

func (l *ledgerRepository) Accounts() RecordStore[models.Account] { return l.accounts }
func (l *ledgerRepository) Transactions() TransactionStore { return l.transactions }
func (l *ledgerRepository) Budgets() RecordStore[models.Budget] { return l.budgets }
func (l *ledgerRepository) Categories() RecordStore[models.Category] { return l.categories }

// RunAtomic runs fn inside a database transaction. When the transaction
// fails with an error the classifier marks [Retryable], the whole unit is
// run again, up to maxAtomicAttempts times.
func (l *ledgerRepository) RunAtomic(ctx context.Context, fn func(tx LedgerStore) error) error {
	if l.inTx {
		return fn(l)
	}

	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxAtomicAttempts; attempt++ {
		err = l.runInTx(ctx, fn)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || l.db.errorClassificator == nil ||
			l.db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		log.Warn().Err(err).
			Str("func", "ledgerRepository.RunAtomic").
			Int("attempt", attempt).
			Msg("atomic unit failed with retryable error")
	}

	return err
}

func (l *ledgerRepository) runInTx(ctx context.Context, fn func(tx LedgerStore) error) (err error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(newLedgerRepository(l.db, tx, true)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
