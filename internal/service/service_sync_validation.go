package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/validators"
	"github.com/MKhiriev/go-finance-tracker/models"
)

// SyncValidationService rejects malformed batches before any record is
// applied.
type SyncValidationService struct {
	inner     SyncService
	validator validators.Validator
}

func NewSyncValidationService(validator validators.Validator) SyncServiceWrapper {
	return &SyncValidationService{
		validator: validator,
	}
}

func (v *SyncValidationService) Sync(ctx context.Context, userID string, batch models.SyncBatch) (models.SyncResult, error) {
	if err := v.validator.Validate(ctx, batch); err != nil {
		return models.SyncResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Sync(ctx, userID, batch)
}

func (v *SyncValidationService) ServerTime(ctx context.Context) time.Time {
	return v.inner.ServerTime(ctx)
}

func (v *SyncValidationService) Wrap(inner SyncService) SyncService {
	v.inner = inner
	return v
}
