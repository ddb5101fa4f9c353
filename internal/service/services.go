package service

import (
	"fmt"

	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/internal/utils"
	"github.com/MKhiriev/go-finance-tracker/internal/validators"
)

// Services bundles the server-side services handed to the transport layer.
// Sync and transaction services come already wrapped with request
// validation.
type Services struct {
	AuthService        AuthService
	AppInfoService     AppInfoService
	SyncService        SyncService
	TransactionService TransactionService
	ReportService      ReportService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	batchValidator, err := validators.NewSyncBatchValidator()
	if err != nil {
		return nil, fmt.Errorf("error creating sync batch validator: %w", err)
	}

	ids := utils.NewUUIDGenerator()
	transfers := NewTransferWriter(storages.Ledger, ids, cfg.Ledger)

	syncService := NewSyncValidationService(batchValidator).
		Wrap(NewSyncService(storages.Ledger, transfers, cfg.Sync))

	transactionService := NewTransactionValidationService().
		Wrap(NewTransactionService(storages.Ledger, transfers, ids))

	return &Services{
		AuthService:        NewAuthService(cfg.App, logger),
		AppInfoService:     appInfoService,
		SyncService:        syncService,
		TransactionService: transactionService,
		ReportService:      NewReportService(storages.Ledger),
	}, nil
}
