package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidSyncBatch wraps every JSON Schema violation of a pushed batch.
	ErrInvalidSyncBatch = errors.New("invalid sync batch")

	// ErrMissingTimestamp is wrapped into ErrInvalidSyncBatch when a pushed
	// record has no createdAt, updatedAt or transactionDate.
	ErrMissingTimestamp = errors.New("missing timestamp")

	ErrInvalidAccountID       = errors.New("invalid account ID")
	ErrInvalidCategoryID      = errors.New("invalid category ID")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrMissingToAccount       = errors.New("transfer requires a destination account")
	ErrUnexpectedToAccount    = errors.New("destination account is only allowed for transfers")
	ErrNoteTooLong            = errors.New("note is too long")
	ErrNoFieldsToUpdate       = errors.New("at least one field must be provided for update")
	ErrReadOnlyField          = errors.New("field cannot be changed by an update")
)
