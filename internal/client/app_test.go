package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/service"
	"github.com/MKhiriev/go-finance-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSyncService struct {
	syncFn func(ctx context.Context) (service.SyncReport, error)
	calls  int
}

func (m *mockSyncService) Sync(ctx context.Context) (service.SyncReport, error) {
	m.calls++
	return m.syncFn(ctx)
}

func (m *mockSyncService) RecordTransfer(ctx context.Context, req models.TransferRequest) (models.TransferResult, error) {
	return models.TransferResult{}, errors.New("not implemented")
}

func (m *mockSyncService) Transfer(ctx context.Context, req models.TransferRequest) (models.TransferResult, error) {
	return models.TransferResult{}, errors.New("not implemented")
}

type mockWorkers struct {
	running bool
	runs    int
	stops   int
}

func (m *mockWorkers) Run(ctx context.Context) {
	m.runs++
	m.running = true
}

func (m *mockWorkers) Stop() {
	m.stops++
	m.running = false
}

func TestApp_Run(t *testing.T) {
	tests := []struct {
		name    string
		syncErr error
	}{
		{name: "initial sync succeeds"},
		{name: "initial sync fails", syncErr: errors.New("server unreachable")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syncSvc := &mockSyncService{syncFn: func(ctx context.Context) (service.SyncReport, error) {
				return service.SyncReport{Pushed: 1, ServerTime: time.Now()}, tt.syncErr
			}}
			ws := &mockWorkers{}
			app := NewApp(&service.ClientServices{SyncService: syncSvc}, ws, logger.Nop())

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- app.Run(ctx) }()

			cancel()

			select {
			case err := <-done:
				require.NoError(t, err)
			case <-time.After(time.Second):
				t.Fatal("Run did not return after cancel")
			}

			assert.Equal(t, 1, syncSvc.calls)
			assert.Equal(t, 1, ws.runs)
			assert.Equal(t, 1, ws.stops)
			assert.False(t, ws.running)
		})
	}
}
