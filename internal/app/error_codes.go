// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the application-level constants shared by the HTTP
// handlers and the sync agent.
//
// The Code* constants are the machine-readable errorCode values of an
// ErrorResponse body. Clients branch on them, so they must never change once
// released.
package app

const (
	// CodeValidationFailed is returned when a request body cannot be decoded
	// or fails validation.
	CodeValidationFailed = "VALIDATION_FAILED"

	// CodeInvalidAmount is returned when an amount that must be positive is
	// zero or negative.
	CodeInvalidAmount = "INVALID_AMOUNT"

	// CodeSameAccountTransfer is returned for a transfer whose source and
	// destination accounts are equal.
	CodeSameAccountTransfer = "SAME_ACCOUNT_TRANSFER"

	CodeAccountNotFound     = "ACCOUNT_NOT_FOUND"
	CodeTransactionNotFound = "TRANSACTION_NOT_FOUND"

	// CodeTransferCannotBeModified is returned on any attempt to edit a
	// transfer leg.
	CodeTransferCannotBeModified = "TRANSFER_CANNOT_BE_MODIFIED"

	// CodeUnauthorized is returned when the bearer token is missing, expired
	// or invalid.
	CodeUnauthorized = "UNAUTHORIZED"

	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"

	// CodeInternalServerError is returned for unexpected server failures.
	// The message never carries internal details.
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// Human-readable messages paired with the codes above.
const (
	MsgInvalidDataProvided     = "invalid data provided"
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"
	MsgInternalServerError     = "internal server error"
	MsgMethodNotAllowed        = "method not allowed"
)
