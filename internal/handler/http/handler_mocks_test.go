package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/service"
	"github.com/MKhiriev/go-finance-tracker/internal/utils"
	"github.com/MKhiriev/go-finance-tracker/models"
)

const testUserID = "0190f5c2-7d7e-7a4b-9a51-2f4f8c1e6d00"

// mockAuthService implements service.AuthService.
type mockAuthService struct {
	parseTokenFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// acceptAnyToken authenticates every bearer token as testUserID.
func acceptAnyToken() *mockAuthService {
	return &mockAuthService{parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
		return models.Token{UserID: testUserID}, nil
	}}
}

// mockSyncService implements service.SyncService.
type mockSyncService struct {
	syncFn       func(ctx context.Context, userID string, batch models.SyncBatch) (models.SyncResult, error)
	serverTimeFn func(ctx context.Context) time.Time
}

func (m *mockSyncService) Sync(ctx context.Context, userID string, batch models.SyncBatch) (models.SyncResult, error) {
	return m.syncFn(ctx, userID, batch)
}

func (m *mockSyncService) ServerTime(ctx context.Context) time.Time {
	return m.serverTimeFn(ctx)
}

// mockTransactionService implements service.TransactionService. Unset
// methods panic on call.
type mockTransactionService struct {
	createFn   func(ctx context.Context, userID string, req models.TransactionCreate) (models.Transaction, error)
	getFn      func(ctx context.Context, userID, id string) (models.Transaction, error)
	listFn     func(ctx context.Context, userID string, filter models.TransactionFilter) ([]models.Transaction, error)
	updateFn   func(ctx context.Context, userID, id string, update models.TransactionUpdate) (models.Transaction, error)
	deleteFn   func(ctx context.Context, userID, id string) error
	transferFn func(ctx context.Context, userID string, req models.TransferRequest) (models.TransferResult, error)
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, userID string, req models.TransactionCreate) (models.Transaction, error) {
	return m.createFn(ctx, userID, req)
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, userID, id string) (models.Transaction, error) {
	return m.getFn(ctx, userID, id)
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, userID string, filter models.TransactionFilter) ([]models.Transaction, error) {
	return m.listFn(ctx, userID, filter)
}

func (m *mockTransactionService) UpdateTransaction(ctx context.Context, userID, id string, update models.TransactionUpdate) (models.Transaction, error) {
	return m.updateFn(ctx, userID, id, update)
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, userID, id string) error {
	return m.deleteFn(ctx, userID, id)
}

func (m *mockTransactionService) CreateTransfer(ctx context.Context, userID string, req models.TransferRequest) (models.TransferResult, error) {
	return m.transferFn(ctx, userID, req)
}

// mockReportService implements service.ReportService. Unset methods panic
// on call.
type mockReportService struct {
	monthlyFn    func(ctx context.Context, userID, month string, accountID *string) (models.MonthlySummary, error)
	categoriesFn func(ctx context.Context, userID string, query models.CategoryBreakdownQuery) ([]models.CategorySummary, error)
	budgetsFn    func(ctx context.Context, userID, month string) ([]models.BudgetVsActual, error)
}

func (m *mockReportService) MonthlySummary(ctx context.Context, userID, month string, accountID *string) (models.MonthlySummary, error) {
	return m.monthlyFn(ctx, userID, month, accountID)
}

func (m *mockReportService) CategoryBreakdown(ctx context.Context, userID string, query models.CategoryBreakdownQuery) ([]models.CategorySummary, error) {
	return m.categoriesFn(ctx, userID, query)
}

func (m *mockReportService) BudgetVsActual(ctx context.Context, userID, month string) ([]models.BudgetVsActual, error) {
	return m.budgetsFn(ctx, userID, month)
}

// newRouterWithServices builds the full router over the given services with
// a token check that accepts everything.
func newRouterWithServices(t *testing.T, services *service.Services) http.Handler {
	t.Helper()
	if services.AuthService == nil {
		services.AuthService = acceptAnyToken()
	}
	if services.AppInfoService == nil {
		services.AppInfoService = &mockAppInfoService{version: "test"}
	}
	return NewHandler(services, logger.Nop()).Init()
}

// withUserID кладёт userID в контекст запроса, как это делает auth.
func withUserID(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
	return r.WithContext(ctx)
}

func ptr[T any](v T) *T { return &v }

func decodeErrorResponse(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}
