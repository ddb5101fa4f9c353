package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-finance-tracker/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// recordTable describes how one entity kind maps onto its table. values must
// return one argument per column, in column order.
type recordTable[T models.SyncableRecord] struct {
	name    string
	columns []string
	scan    func(row rowScanner) (T, error)
	values  func(record T) []any
}

// columns never rewritten by an update
var immutableColumns = map[string]bool{
	"id":         true,
	"user_id":    true,
	"created_at": true,
}

func (t recordTable[T]) selectByIDQuery(id string) (string, []any, error) {
	return psql.Select(t.columns...).
		From(t.name).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (t recordTable[T]) selectSinceQuery(userID string, since time.Time) (string, []any, error) {
	return psql.Select(t.columns...).
		From(t.name).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Gt{"updated_at": since}).
		OrderBy("updated_at ASC", "id ASC").
		ToSql()
}

func (t recordTable[T]) insertQuery(record T) (string, []any, error) {
	return psql.Insert(t.name).
		Columns(t.columns...).
		Values(t.values(record)...).
		ToSql()
}

func (t recordTable[T]) updateQuery(record T) (string, []any, error) {
	values := t.values(record)
	if len(values) != len(t.columns) {
		return "", nil, fmt.Errorf("%w: %s has %d columns but %d values", ErrBuildingSQLQuery, t.name, len(t.columns), len(values))
	}

	set := make(map[string]any, len(t.columns))
	for i, col := range t.columns {
		if immutableColumns[col] {
			continue
		}
		set[col] = values[i]
	}

	return psql.Update(t.name).
		SetMap(set).
		Where(sq.Eq{"id": record.GetID()}).
		ToSql()
}

func (t recordTable[T]) deleteQuery(id string) (string, []any, error) {
	return psql.Delete(t.name).
		Where(sq.Eq{"id": id}).
		ToSql()
}

var accountsTable = recordTable[models.Account]{
	name: "accounts",
	columns: []string{
		"id", "user_id", "name", "type", "currency", "opening_balance",
		"is_deleted", "created_at", "updated_at",
	},
	scan: func(row rowScanner) (models.Account, error) {
		var a models.Account
		err := row.Scan(
			&a.ID, &a.UserID, &a.Name, &a.Type, &a.Currency, &a.OpeningBalance,
			&a.IsDeleted, &a.CreatedAt, &a.UpdatedAt,
		)
		return a, err
	},
	values: func(a models.Account) []any {
		return []any{
			a.ID, a.UserID, a.Name, string(a.Type), a.Currency, a.OpeningBalance,
			a.IsDeleted, a.CreatedAt, a.UpdatedAt,
		}
	},
}

var transactionsTable = recordTable[models.Transaction]{
	name: "transactions",
	columns: []string{
		"id", "user_id", "account_id", "category_id", "type", "amount", "note",
		"transaction_date", "linked_transaction_id", "is_deleted", "created_at", "updated_at",
	},
	scan: func(row rowScanner) (models.Transaction, error) {
		var t models.Transaction
		err := row.Scan(
			&t.ID, &t.UserID, &t.AccountID, &t.CategoryID, &t.Type, &t.Amount, &t.Note,
			&t.TransactionDate, &t.LinkedTransactionID, &t.IsDeleted, &t.CreatedAt, &t.UpdatedAt,
		)
		return t, err
	},
	values: func(t models.Transaction) []any {
		return []any{
			t.ID, t.UserID, t.AccountID, t.CategoryID, string(t.Type), t.Amount, t.Note,
			t.TransactionDate, t.LinkedTransactionID, t.IsDeleted, t.CreatedAt, t.UpdatedAt,
		}
	},
}

var budgetsTable = recordTable[models.Budget]{
	name: "budgets",
	columns: []string{
		"id", "user_id", "category_id", "amount", "month",
		"is_deleted", "created_at", "updated_at",
	},
	scan: func(row rowScanner) (models.Budget, error) {
		var b models.Budget
		err := row.Scan(
			&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Month,
			&b.IsDeleted, &b.CreatedAt, &b.UpdatedAt,
		)
		return b, err
	},
	values: func(b models.Budget) []any {
		return []any{
			b.ID, b.UserID, b.CategoryID, b.Amount, b.Month,
			b.IsDeleted, b.CreatedAt, b.UpdatedAt,
		}
	},
}

var categoriesTable = recordTable[models.Category]{
	name: "categories",
	columns: []string{
		"id", "user_id", "name", "type",
		"is_deleted", "created_at", "updated_at",
	},
	scan: func(row rowScanner) (models.Category, error) {
		var c models.Category
		err := row.Scan(
			&c.ID, &c.UserID, &c.Name, &c.Type,
			&c.IsDeleted, &c.CreatedAt, &c.UpdatedAt,
		)
		return c, err
	},
	values: func(c models.Category) []any {
		return []any{
			c.ID, c.UserID, c.Name, string(c.Type),
			c.IsDeleted, c.CreatedAt, c.UpdatedAt,
		}
	},
}

// buildPatchTransactionQuery dynamically builds the UPDATE for the non-nil
// fields of update.
func buildPatchTransactionQuery(id string, update models.TransactionUpdate) (string, []any, error) {
	set := make(map[string]any, 8)

	if update.AccountID != nil {
		set["account_id"] = *update.AccountID
	}
	if update.CategoryID != nil {
		set["category_id"] = *update.CategoryID
	}
	if update.Amount != nil {
		set["amount"] = *update.Amount
	}
	if update.Note != nil {
		set["note"] = *update.Note
	}
	if update.TransactionDate != nil {
		set["transaction_date"] = *update.TransactionDate
	}
	if update.LinkedTransactionID != nil {
		set["linked_transaction_id"] = *update.LinkedTransactionID
	}
	if update.IsDeleted != nil {
		set["is_deleted"] = *update.IsDeleted
	}
	if !update.UpdatedAt.IsZero() {
		set["updated_at"] = update.UpdatedAt
	}

	if len(set) == 0 {
		return "", nil, fmt.Errorf("%w: empty transaction update", ErrBuildingSQLQuery)
	}

	return psql.Update(transactionsTable.name).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
}
