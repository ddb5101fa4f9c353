package validators

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-finance-tracker/models"
)

// Field name constants used to restrict validation of ledger requests to a
// subset of fields.
const (
	FieldAccountID     = "account_id"
	FieldFromAccountID = "from_account_id"
	FieldToAccountID   = "to_account_id"
	FieldCategoryID    = "category_id"
	FieldAmount        = "amount"
	FieldType          = "type"
	FieldNote          = "note"

	// FieldUpdateNotEmpty requires at least one field of a TransactionUpdate.
	FieldUpdateNotEmpty = "update_not_empty"

	// FieldUpdateReadOnly rejects updates of ledger-managed fields.
	FieldUpdateReadOnly = "update_read_only"
)

const maxNoteLength = 1000

var allowedTransactionTypes = []models.TransactionType{
	models.TransactionIncome,
	models.TransactionExpense,
	models.TransactionTransfer,
}

// LedgerRequestValidator validates the payloads of the online transaction
// endpoints.
type LedgerRequestValidator struct {
}

func NewLedgerRequestValidator() Validator {
	return &LedgerRequestValidator{}
}

func (v *LedgerRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.TransferRequest:
		return v.validateTransferRequest(value, fields...)
	case *models.TransferRequest:
		return v.validateTransferRequest(*value, fields...)

	case models.TransactionCreate:
		return v.validateTransactionCreate(value, fields...)
	case *models.TransactionCreate:
		return v.validateTransactionCreate(*value, fields...)

	case models.TransactionUpdate:
		return v.validateTransactionUpdate(value, fields...)
	case *models.TransactionUpdate:
		return v.validateTransactionUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *LedgerRequestValidator) validateTransferRequest(req models.TransferRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFromAccountID, FieldToAccountID, FieldAmount, FieldNote}
	}

	for _, f := range fields {
		switch f {
		case FieldFromAccountID:
			if !isUUID(req.FromAccountID) {
				return ErrInvalidAccountID
			}
		case FieldToAccountID:
			if !isUUID(req.ToAccountID) {
				return ErrInvalidAccountID
			}
		case FieldAmount:
			if !req.Amount.IsPositive() {
				return ErrInvalidAmount
			}
		case FieldNote:
			if req.Note != nil && len(*req.Note) > maxNoteLength {
				return ErrNoteTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LedgerRequestValidator) validateTransactionCreate(req models.TransactionCreate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldType, FieldAccountID, FieldToAccountID, FieldCategoryID, FieldAmount, FieldNote}
	}

	for _, f := range fields {
		switch f {
		case FieldType:
			if !slices.Contains(allowedTransactionTypes, req.Type) {
				return ErrInvalidTransactionType
			}
		case FieldAccountID:
			if !isUUID(req.AccountID) {
				return ErrInvalidAccountID
			}
		case FieldToAccountID:
			if req.Type == models.TransactionTransfer {
				if req.ToAccountID == nil {
					return ErrMissingToAccount
				}
				if !isUUID(*req.ToAccountID) {
					return ErrInvalidAccountID
				}
			} else if req.ToAccountID != nil {
				return ErrUnexpectedToAccount
			}
		case FieldCategoryID:
			if req.CategoryID != nil && !isUUID(*req.CategoryID) {
				return ErrInvalidCategoryID
			}
		case FieldAmount:
			if !req.Amount.IsPositive() {
				return ErrInvalidAmount
			}
		case FieldNote:
			if req.Note != nil && len(*req.Note) > maxNoteLength {
				return ErrNoteTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LedgerRequestValidator) validateTransactionUpdate(update models.TransactionUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUpdateNotEmpty, FieldUpdateReadOnly, FieldAccountID, FieldCategoryID, FieldAmount, FieldNote}
	}

	for _, f := range fields {
		switch f {
		case FieldUpdateNotEmpty:
			if update.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldUpdateReadOnly:
			if update.LinkedTransactionID != nil || update.IsDeleted != nil {
				return ErrReadOnlyField
			}
		case FieldAccountID:
			if update.AccountID != nil && !isUUID(*update.AccountID) {
				return ErrInvalidAccountID
			}
		case FieldCategoryID:
			if update.CategoryID != nil && !isUUID(*update.CategoryID) {
				return ErrInvalidCategoryID
			}
		case FieldAmount:
			if update.Amount != nil && !update.Amount.IsPositive() {
				return ErrInvalidAmount
			}
		case FieldNote:
			if update.Note != nil && len(*update.Note) > maxNoteLength {
				return ErrNoteTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isUUID(s string) bool {
	return uuid.Validate(s) == nil
}
