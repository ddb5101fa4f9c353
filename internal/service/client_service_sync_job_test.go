// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spySyncService считает вызовы Sync.
type spySyncService struct {
	calls atomic.Int64
	err   error
}

func (s *spySyncService) Sync(_ context.Context) (SyncReport, error) {
	s.calls.Add(1)
	return SyncReport{}, s.err
}

func (s *spySyncService) RecordTransfer(_ context.Context, _ models.TransferRequest) (models.TransferResult, error) {
	return models.TransferResult{}, nil
}

func (s *spySyncService) Transfer(_ context.Context, _ models.TransferRequest) (models.TransferResult, error) {
	return models.TransferResult{}, nil
}

var (
	_ ClientSyncService = (*spySyncService)(nil)
	_ ClientSyncService = (*captureSyncService)(nil)
)

// ── NewClientSyncJob ─────────────────────────────────────────────────────────

func TestNewClientSyncJob_ReturnsInterface(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop())
	require.NotNil(t, job)

	// проверяем что возвращённый объект реализует ClientSyncJob
	var _ ClientSyncJob = job
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestClientSyncJob_Start_CallsSync(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop())
	ctx := context.Background()

	// Интервал 10ms - за 55ms должно быть ~5 тиков
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "Sync должен быть вызван несколько раз, вызвано: %d", got)
}

func TestClientSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop())
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	callsLater := spy.calls.Load()

	assert.Equal(t, callsAfterStop, callsLater, "после Stop новых вызовов быть не должно")
}

func TestClientSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop())

	// Stop без Start не должен паниковать
	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientSyncJob_DoubleStop_NoPanic(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop())
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	job.Stop()

	// Повторный Stop не должен паниковать
	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientSyncJob_Start_DefaultInterval(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop()).(*clientSyncJob)
	ctx, cancel := context.WithCancel(context.Background())

	// interval <= 0 → дефолт 5 минут, за 20ms вызовов быть не должно
	job.Start(ctx, 0)
	time.Sleep(20 * time.Millisecond)
	cancel()
	job.Stop()

	assert.Equal(t, int64(0), spy.calls.Load(), "при дефолтном интервале 5min за 20ms вызовов нет")
}

func TestClientSyncJob_Start_NegativeInterval(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	// Отрицательный интервал → дефолт 5 минут
	job.Start(ctx, -1*time.Second)
	time.Sleep(20 * time.Millisecond)
	cancel()
	job.Stop()

	assert.Equal(t, int64(0), spy.calls.Load())
}

func TestClientSyncJob_Restart_StopsPrevious(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop())
	ctx := context.Background()

	// Первый запуск
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	callsBefore := spy.calls.Load()
	assert.Greater(t, callsBefore, int64(0))

	// Перезапуск - предыдущая горутина должна остановиться
	spy2 := &spySyncService{}
	job2 := NewClientSyncJob(spy2, logger.Nop())
	// Используем тот же job чтобы проверить restart
	_ = job2

	// Start повторно на том же job - внутри вызовет Stop()
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	// Оба раунда должны были сгенерировать вызовы
	totalCalls := spy.calls.Load()
	assert.Greater(t, totalCalls, callsBefore, "второй Start должен продолжить генерировать вызовы")
}

func TestClientSyncJob_ContextCancel_StopsJob(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel() // отменяем родительский контекст

	// Stop должен вернуться без зависания
	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
		// ok
	case <-time.After(1 * time.Second):
		t.Fatal("Stop завис после отмены контекста")
	}
}

func TestClientSyncJob_SyncError_DoesNotStopJob(t *testing.T) {
	spy := &spySyncService{err: assert.AnError}
	job := NewClientSyncJob(spy, logger.Nop())
	ctx := context.Background()

	// Sync возвращает ошибку, но джоб продолжает работать
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "несмотря на ошибки, Sync продолжает вызываться: %d", got)
}

func TestClientSyncJob_Stop_CancelsRoundContext(t *testing.T) {
	var cancelled atomic.Bool
	started := make(chan struct{}, 1)

	spy := &captureSyncService{onSync: func(ctx context.Context) (SyncReport, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		cancelled.Store(true)
		return SyncReport{}, ctx.Err()
	}}

	job := NewClientSyncJob(spy, logger.Nop())
	job.Start(context.Background(), 5*time.Millisecond)

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("Sync не был вызван")
	}
	job.Stop()

	assert.True(t, cancelled.Load(), "Stop должен отменять контекст текущего раунда")
}

// captureSyncService - позволяет перехватить вызов Sync.
type captureSyncService struct {
	onSync func(ctx context.Context) (SyncReport, error)
}

func (c *captureSyncService) Sync(ctx context.Context) (SyncReport, error) {
	return c.onSync(ctx)
}

func (c *captureSyncService) RecordTransfer(_ context.Context, _ models.TransferRequest) (models.TransferResult, error) {
	return models.TransferResult{}, nil
}

func (c *captureSyncService) Transfer(_ context.Context, _ models.TransferRequest) (models.TransferResult, error) {
	return models.TransferResult{}, nil
}
