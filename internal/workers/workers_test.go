// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run and Stop were called.
type mockWorker struct {
	runCount  int
	stopCount int
}

func (m *mockWorker) Run(ctx context.Context) {
	m.runCount++
}

func (m *mockWorker) Stop() {
	m.stopCount++
}

// fakeSyncJob records Start/Stop calls of the sync worker.
type fakeSyncJob struct {
	started  int
	stopped  int
	interval time.Duration
}

func (f *fakeSyncJob) Start(ctx context.Context, interval time.Duration) {
	f.started++
	f.interval = interval
}

func (f *fakeSyncJob) Stop() {
	f.stopped++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run(context.Background())

	for i, w := range []*mockWorker{w1, w2, w3} {
		assert.Equal(t, 1, w.runCount, "worker[%d]", i)
		assert.Zero(t, w.stopCount, "worker[%d]", i)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Run(context.Background())
	ws.Stop()
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
	ws.Stop()
}

func TestWorkers_Order(t *testing.T) {
	var order []string

	ws := &Workers{workers: []Worker{
		&orderWorker{id: "a", order: &order},
		&orderWorker{id: "b", order: &order},
		&orderWorker{id: "c", order: &order},
	}}
	ws.Run(context.Background())
	ws.Stop()

	assert.Equal(t, []string{"run a", "run b", "run c", "stop c", "stop b", "stop a"}, order)
}

func TestNewWorkers_SyncWorker(t *testing.T) {
	job := &fakeSyncJob{}
	services := &service.ClientServices{SyncJob: job}

	ws := NewWorkers(services, config.ClientWorkers{SyncInterval: 42 * time.Second}, logger.Nop())
	require.Len(t, ws.workers, 1)

	ws.Run(context.Background())
	assert.Equal(t, 1, job.started)
	assert.Equal(t, 42*time.Second, job.interval)

	ws.Stop()
	assert.Equal(t, 1, job.stopped)
}

// orderWorker is a helper that appends its calls to a shared slice.
type orderWorker struct {
	id    string
	order *[]string
}

func (o *orderWorker) Run(ctx context.Context) {
	*o.order = append(*o.order, "run "+o.id)
}

func (o *orderWorker) Stop() {
	*o.order = append(*o.order, "stop "+o.id)
}
