// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-finance-tracker/internal/adapter"
	"github.com/MKhiriev/go-finance-tracker/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	code := extractCode(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch code {
		case app.CodeValidationFailed:
			return ErrInvalidDataProvided
		case app.CodeInvalidAmount:
			return ErrInvalidAmount
		case app.CodeSameAccountTransfer:
			return ErrSameAccountTransfer
		case app.CodeTransferCannotBeModified:
			return ErrTransferCannotBeModified
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		return ErrTokenIsExpiredOrInvalid

	case errors.Is(err, adapter.ErrNotFound):
		switch code {
		case app.CodeAccountNotFound:
			return ErrAccountNotFound
		case app.CodeTransactionNotFound:
			return ErrTransactionNotFound
		}
	}

	return err
}

// extractCode extracts the error code from a message of the form
// "bad request: <CODE>: <message>"
func extractCode(err error) string {
	msg := err.Error()
	idx := strings.Index(msg, ": ")
	if idx == -1 {
		return ""
	}
	body := msg[idx+2:]
	if end := strings.Index(body, ": "); end != -1 {
		return body[:end]
	}
	return body
}
