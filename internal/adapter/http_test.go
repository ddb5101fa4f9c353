// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/models"
)

// newTestAdapter создаёт httpServerAdapter, направленный на тестовый сервер
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}
	appCfg := config.ClientApp{Token: "  test-token "}

	a, err := NewHTTPServerAdapter(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── Sync ─────────────────────────────────────────────────────────────────────

func TestSync_Success(t *testing.T) {
	serverTime := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	batch := models.SyncBatch{
		DeviceID: "device-1",
		Accounts: []models.Account{{SyncMeta: models.SyncMeta{ID: "a1"}, Name: "Cash"}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sync", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var got models.SyncBatch
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "device-1", got.DeviceID)
		require.Len(t, got.Accounts, 1)

		result := models.SyncResult{
			ServerTime: serverTime,
			SyncedAt:   serverTime,
			Changes:    models.NewSyncChanges(),
			Conflicts: []models.ConflictReport{{
				EntityType:    models.EntityAccount,
				EntityID:      "a1",
				ServerVersion: models.Account{SyncMeta: models.SyncMeta{ID: "a1"}, Name: "Server"},
				Resolution:    models.ResolutionServerWon,
				Reason:        "Server timestamp newer",
			}},
			Rejected: []models.RejectedRecord{},
		}
		writeJSON(t, w, http.StatusOK, result)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Sync(context.Background(), batch)

	require.NoError(t, err)
	assert.True(t, serverTime.Equal(got.ServerTime))
	require.Len(t, got.Conflicts, 1)
	assert.Equal(t, models.ResolutionServerWon, got.Conflicts[0].Resolution)

	version, ok := got.Conflicts[0].ServerVersion.(map[string]any)
	require.True(t, ok, "versions decode as generic JSON")
	assert.Equal(t, "Server", version["name"])
}

func TestSync_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		wantErr error
		wantMsg string
	}{
		{
			name:   "validation",
			status: http.StatusBadRequest,
			body: models.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				ErrorCode:  "VALIDATION_FAILED",
				Message:    "invalid sync batch",
			},
			wantErr: ErrBadRequest,
			wantMsg: "VALIDATION_FAILED: invalid sync batch",
		},
		{name: "unauthorized", status: http.StatusUnauthorized, body: "nope", wantErr: ErrUnauthorized},
		{name: "internal", status: http.StatusInternalServerError, body: "boom", wantErr: ErrInternalServerError},
		{name: "bad gateway", status: http.StatusBadGateway, body: "", wantErr: ErrBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, tt.body)
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			_, err := a.Sync(context.Background(), models.SyncBatch{})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestSync_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, url)
	_, err := a.Sync(context.Background(), models.SyncBatch{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync request")
}

// ── ServerTime ───────────────────────────────────────────────────────────────

func TestServerTime_Success(t *testing.T) {
	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/sync/time", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.ServerTimeResponse{ServerTime: want})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.ServerTime(context.Background())

	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestServerTime_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("")
	_, err := a.ServerTime(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── CreateTransfer ───────────────────────────────────────────────────────────

func TestCreateTransfer_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/transfer", r.URL.Path)

		var req models.TransferRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Amount.Equal(decimal.RequireFromString("50.00")))

		writeJSON(t, w, http.StatusCreated, models.TransferResult{
			TransferID: "debit-1",
			Amount:     req.Amount,
			Status:     models.TransferStatusCompleted,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.CreateTransfer(context.Background(), models.TransferRequest{
		FromAccountID: "a",
		ToAccountID:   "b",
		Amount:        decimal.RequireFromString("50.00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "debit-1", got.TransferID)
	assert.Equal(t, models.TransferStatusCompleted, got.Status)
}

func TestCreateTransfer_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{ErrorCode: "ACCOUNT_NOT_FOUND", Message: "account not found"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.CreateTransfer(context.Background(), models.TransferRequest{})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "ACCOUNT_NOT_FOUND")
}

func TestSetToken(t *testing.T) {
	a := newTestAdapter(t, "localhost:8080")
	assert.Equal(t, "test-token", a.Token())

	a.SetToken(" other ")
	assert.Equal(t, "other", a.Token())
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
