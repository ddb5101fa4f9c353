package service

import (
	"github.com/MKhiriev/go-finance-tracker/internal/adapter"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
)

type ClientServices struct {
	SyncService ClientSyncService
	SyncJob     ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	syncSvc := NewClientSyncService(storages.LocalLedger, serverAdapter, logger)

	return &ClientServices{
		SyncService: syncSvc,
		SyncJob:     NewClientSyncJob(syncSvc, logger),
	}
}
