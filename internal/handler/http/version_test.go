package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/service"
	"github.com/MKhiriev/go-finance-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock
// ─────────────────────────────────────────────

// mockAppInfoService implements service.AppInfoService for testing.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// newHandlerWithAppInfo builds a Handler whose AppInfoService is replaced
// with the provided mock. All other service fields are left nil because
// getServerVersion does not use them.
func newHandlerWithAppInfo(t *testing.T, svc service.AppInfoService) *Handler {
	t.Helper()
	return NewHandler(
		&service.Services{AppInfoService: svc},
		logger.Nop(),
	)
}

func decodeVersion(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Version
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestGetServerVersion_WritesVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"semver", "1.2.3"},
		{"empty", ""},
		{"special chars", "v2.0.0-beta+build.42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithAppInfo(t, &mockAppInfoService{version: tt.version})

			req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
			rec := httptest.NewRecorder()

			h.getServerVersion(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.version, decodeVersion(t, rec))
		})
	}
}

func TestGetServerVersion_ViaRouter(t *testing.T) {
	const want = "3.0.0"

	h := newHandlerWithAppInfo(t, &mockAppInfoService{version: want})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, want, decodeVersion(t, rec))
}

func TestGetServerVersion_NoAuthRequired(t *testing.T) {
	h := newHandlerWithAppInfo(t, &mockAppInfoService{version: "1.0.0"})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
