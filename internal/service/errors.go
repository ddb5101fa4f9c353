package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request is structurally
	// valid JSON but misses required fields.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrNoUserID is returned when an operation is called without an
	// authenticated user.
	ErrNoUserID = errors.New("no user ID was given")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
)

// Ledger write errors.
var (
	// ErrInvalidAmount is returned when an amount that must be positive is not.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrSameAccountTransfer is returned when a transfer names the same
	// account as source and destination.
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")

	// ErrAccountNotFound is returned when an account does not exist, is
	// deleted or belongs to another user.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound is returned when a transaction does not exist,
	// is deleted or belongs to another user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransferCannotBeModified is returned on any attempt to change a
	// transfer leg other than deleting the pair.
	ErrTransferCannotBeModified = errors.New("transfer transactions cannot be modified")
)

// Sync errors. Per-record errors end up as rejected records, never as a
// failed sync.
var (
	// ErrForeignRecord is returned when a pushed id is already used by a
	// record of another user.
	ErrForeignRecord = errors.New("record belongs to another user")

	// ErrMissingRecordID is returned for a pushed record without an id.
	ErrMissingRecordID = errors.New("record has no id")

	// ErrUnpairedTransferLeg is returned when a new transfer leg is pushed
	// without its linked partner in the same batch.
	ErrUnpairedTransferLeg = errors.New("transfer leg pushed without its linked partner")

	// ErrPullFailed is returned when changed records could not be read.
	ErrPullFailed = errors.New("failed to pull changes")
)

// Report errors.
var (
	// ErrInvalidReportPeriod is returned for a month that is not YYYY-MM or
	// a date range that ends before it starts.
	ErrInvalidReportPeriod = errors.New("invalid report period")

	// ErrReportFailed is returned when the ledger could not be read.
	ErrReportFailed = errors.New("failed to build report")
)
