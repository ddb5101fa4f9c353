package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-finance-tracker/models"
)

// SyncService runs a synchronization round for one device.
type SyncService interface {
	// Sync applies the pushed batch with last-writer-wins resolution and
	// returns every record of the user changed since batch.LastSyncAt.
	Sync(ctx context.Context, userID string, batch models.SyncBatch) (models.SyncResult, error)

	// ServerTime returns the server clock, used by devices to measure skew.
	ServerTime(ctx context.Context) time.Time
}

// SyncServiceWrapper defines middleware composition for SyncService.
type SyncServiceWrapper interface {
	Wrap(SyncService) SyncService
}

// TransactionService is the online transaction API. Every method is
// scoped to userID.
type TransactionService interface {
	CreateTransaction(ctx context.Context, userID string, req models.TransactionCreate) (models.Transaction, error)
	GetTransaction(ctx context.Context, userID, id string) (models.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter models.TransactionFilter) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, id string, update models.TransactionUpdate) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
	CreateTransfer(ctx context.Context, userID string, req models.TransferRequest) (models.TransferResult, error)
}

// TransactionServiceWrapper defines middleware composition for
// TransactionService. Implementations wrap an existing TransactionService
// to add behavior such as validation.
type TransactionServiceWrapper interface {
	Wrap(TransactionService) TransactionService
}

// ReportService builds read-only aggregates over the user's live ledger.
type ReportService interface {
	// MonthlySummary totals income and expenses of a YYYY-MM month,
	// optionally for one account.
	MonthlySummary(ctx context.Context, userID, month string, accountID *string) (models.MonthlySummary, error)

	// CategoryBreakdown groups the selected transactions by category.
	CategoryBreakdown(ctx context.Context, userID string, query models.CategoryBreakdownQuery) ([]models.CategorySummary, error)

	// BudgetVsActual compares every budget of a YYYY-MM month with the
	// expenses filed under its category.
	BudgetVsActual(ctx context.Context, userID, month string) ([]models.BudgetVsActual, error)
}

// AuthService verifies bearer tokens issued by the identity provider.
type AuthService interface {
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// IDGenerator produces ids for server-created records.
type IDGenerator interface {
	Generate() string
}
