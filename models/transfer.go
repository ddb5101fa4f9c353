// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// TransferStatusCompleted is the status of a transfer committed on the
	// server.
	TransferStatusCompleted = "completed"

	// TransferStatusPending marks a transfer recorded on a device and not
	// pushed yet.
	TransferStatusPending = "pending"
)

// Transfer pair invariant violations returned by [ValidateTransferPair].
var (
	ErrTransferLegNotTransfer = errors.New("transfer leg is not of type TRANSFER")
	ErrTransferLegsNotLinked  = errors.New("transfer legs are not linked to each other")
	ErrTransferAmountsInvalid = errors.New("transfer leg amounts are not additive inverses")
	ErrTransferSameAccount    = errors.New("transfer legs reference the same account")
)

// TransferRequest is the payload of the transfer endpoint.
type TransferRequest struct {
	FromAccountID   string          `json:"fromAccountId"`
	ToAccountID     string          `json:"toAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	Note            *string         `json:"note,omitempty"`
	TransactionDate *time.Time      `json:"transactionDate,omitempty"`
}

// TransferResult is returned after both legs were committed.
type TransferResult struct {
	// TransferID is the id of the debit leg.
	TransferID      string          `json:"transferId"`
	FromTransaction Transaction     `json:"fromTransaction"`
	ToTransaction   Transaction     `json:"toTransaction"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
}

// TransferLegs describes a transfer to be materialized as a pair of linked
// TRANSFER transactions.
type TransferLegs struct {
	DebitID  string
	CreditID string
	UserID   string

	From Account
	To   Account

	// Amount is taken by absolute value.
	Amount decimal.Decimal

	// Note overrides both default leg notes when set.
	Note *string

	TransactionDate time.Time
	Now             time.Time
}

// Build returns the debit and credit legs, linked to each other.
func (l TransferLegs) Build() (debit, credit Transaction) {
	amount := l.Amount.Abs()

	debitNote := fmt.Sprintf("Transfer to %s", l.To.Name)
	creditNote := fmt.Sprintf("Transfer from %s", l.From.Name)
	if l.Note != nil {
		debitNote, creditNote = *l.Note, *l.Note
	}

	debitID, creditID := l.DebitID, l.CreditID

	debit = Transaction{
		SyncMeta: SyncMeta{
			ID:        debitID,
			UserID:    l.UserID,
			CreatedAt: l.Now,
			UpdatedAt: l.Now,
		},
		AccountID:           l.From.ID,
		Type:                TransactionTransfer,
		Amount:              amount.Neg(),
		Note:                &debitNote,
		TransactionDate:     l.TransactionDate,
		LinkedTransactionID: &creditID,
	}

	credit = Transaction{
		SyncMeta: SyncMeta{
			ID:        creditID,
			UserID:    l.UserID,
			CreatedAt: l.Now,
			UpdatedAt: l.Now,
		},
		AccountID:           l.To.ID,
		Type:                TransactionTransfer,
		Amount:              amount,
		Note:                &creditNote,
		TransactionDate:     l.TransactionDate,
		LinkedTransactionID: &debitID,
	}

	return debit, credit
}

// ValidateTransferPair checks that a and b form a well-formed transfer pair:
// both TRANSFER, linked to each other, on different accounts, with amounts
// summing to zero. The returned debit is the leg with the negative amount.
func ValidateTransferPair(a, b Transaction) (debit, credit Transaction, err error) {
	if !a.IsTransfer() || !b.IsTransfer() {
		return Transaction{}, Transaction{}, ErrTransferLegNotTransfer
	}

	if a.LinkedTransactionID == nil || b.LinkedTransactionID == nil ||
		*a.LinkedTransactionID != b.ID || *b.LinkedTransactionID != a.ID {
		return Transaction{}, Transaction{}, ErrTransferLegsNotLinked
	}

	if a.AccountID == b.AccountID {
		return Transaction{}, Transaction{}, ErrTransferSameAccount
	}

	if a.Amount.IsZero() || !a.Amount.Add(b.Amount).IsZero() {
		return Transaction{}, Transaction{}, ErrTransferAmountsInvalid
	}

	if a.Amount.IsNegative() {
		return a, b, nil
	}
	return b, a, nil
}
