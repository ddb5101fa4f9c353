package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-finance-tracker/internal/validators"
	"github.com/MKhiriev/go-finance-tracker/models"
)

type TransactionValidationService struct {
	inner     TransactionService
	validator validators.Validator
}

func NewTransactionValidationService() TransactionServiceWrapper {
	return &TransactionValidationService{
		validator: validators.NewLedgerRequestValidator(),
	}
}

func (v *TransactionValidationService) CreateTransaction(ctx context.Context, userID string, req models.TransactionCreate) (models.Transaction, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateTransaction(ctx, userID, req)
}

func (v *TransactionValidationService) GetTransaction(ctx context.Context, userID, id string) (models.Transaction, error) {
	return v.inner.GetTransaction(ctx, userID, id)
}

func (v *TransactionValidationService) ListTransactions(ctx context.Context, userID string, filter models.TransactionFilter) ([]models.Transaction, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidDataProvided)
	}

	return v.inner.ListTransactions(ctx, userID, filter)
}

func (v *TransactionValidationService) UpdateTransaction(ctx context.Context, userID, id string, update models.TransactionUpdate) (models.Transaction, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateTransaction(ctx, userID, id, update)
}

func (v *TransactionValidationService) DeleteTransaction(ctx context.Context, userID, id string) error {
	return v.inner.DeleteTransaction(ctx, userID, id)
}

func (v *TransactionValidationService) CreateTransfer(ctx context.Context, userID string, req models.TransferRequest) (models.TransferResult, error) {
	// same-account and ownership checks need the ledger and stay in the service
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.TransferResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateTransfer(ctx, userID, req)
}

func (v *TransactionValidationService) Wrap(inner TransactionService) TransactionService {
	v.inner = inner
	return v
}
