package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-finance-tracker/models"
)

func TestWriteJSON(t *testing.T) {
	serverTime := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		data     any
		status   int
		wantBody string
	}{
		{
			name:     "server time",
			data:     models.ServerTimeResponse{ServerTime: serverTime},
			status:   http.StatusOK,
			wantBody: `{"serverTime":"2026-05-01T12:00:00Z"}`,
		},
		{
			name:     "created status",
			data:     map[string]string{"status": models.TransferStatusCompleted},
			status:   http.StatusCreated,
			wantBody: `{"status":"completed"}`,
		},
		{
			name:     "nil data",
			data:     nil,
			status:   http.StatusOK,
			wantBody: "null",
		},
		{
			name:     "empty slice",
			data:     []models.ConflictReport{},
			status:   http.StatusOK,
			wantBody: "[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if n != len(tt.wantBody) {
				t.Errorf("expected %d bytes written, got %d", len(tt.wantBody), n)
			}
			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type 'application/json', got '%s'", ct)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("expected body %s, got %s", tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	if err == nil {
		t.Fatal("expected error for non-serializable data, got nil")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}
