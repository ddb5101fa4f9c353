// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionIncome   TransactionType = "INCOME"
	TransactionExpense  TransactionType = "EXPENSE"
	TransactionTransfer TransactionType = "TRANSFER"
)

// Transaction is a single ledger entry against an account.
//
// A TRANSFER transaction is always one leg of a pair: the debit leg carries
// a negative amount on the source account, the credit leg the positive amount
// on the destination account, and each points to the other through
// LinkedTransactionID.
type Transaction struct {
	SyncMeta

	AccountID  string  `json:"accountId"`
	CategoryID *string `json:"categoryId"`

	Type TransactionType `json:"type"`

	// Amount is signed for transfer legs and positive otherwise.
	Amount decimal.Decimal `json:"amount"`

	Note            *string   `json:"note"`
	TransactionDate time.Time `json:"transactionDate"`

	// LinkedTransactionID is set only on transfer legs and references the
	// opposite leg.
	LinkedTransactionID *string `json:"linkedTransactionId"`
}

func (t Transaction) Kind() EntityKind { return EntityTransaction }

func (t Transaction) WithOwner(userID string) Transaction {
	t.UserID = userID
	return t
}

// IsTransfer reports whether the transaction is a transfer leg.
func (t Transaction) IsTransfer() bool {
	return t.Type == TransactionTransfer
}

// TransactionCreate is the payload of the ordinary transaction-creation
// endpoint. For TRANSFER, ToAccountID names the destination account and the
// request is routed to the transfer writer.
type TransactionCreate struct {
	AccountID       string          `json:"accountId"`
	CategoryID      *string         `json:"categoryId,omitempty"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Note            *string         `json:"note,omitempty"`
	TransactionDate *time.Time      `json:"transactionDate,omitempty"`
	ToAccountID     *string         `json:"toAccountId,omitempty"`
}

// TransactionUpdate describes a partial update of a single transaction.
// Only non-nil fields are written.
type TransactionUpdate struct {
	AccountID           *string          `json:"accountId,omitempty"`
	CategoryID          *string          `json:"categoryId,omitempty"`
	Amount              *decimal.Decimal `json:"amount,omitempty"`
	Note                *string          `json:"note,omitempty"`
	TransactionDate     *time.Time       `json:"transactionDate,omitempty"`
	LinkedTransactionID *string          `json:"linkedTransactionId,omitempty"`
	IsDeleted           *bool            `json:"isDeleted,omitempty"`

	// UpdatedAt is stamped by the server; it is never read from the payload.
	UpdatedAt time.Time `json:"-"`
}

// IsEmpty reports whether the update changes nothing.
func (u TransactionUpdate) IsEmpty() bool {
	return u.AccountID == nil && u.CategoryID == nil && u.Amount == nil && u.Note == nil &&
		u.TransactionDate == nil && u.LinkedTransactionID == nil && u.IsDeleted == nil
}

// Apply returns a copy of t with the non-nil fields of u written over it.
// UpdatedAt is taken from u when set.
func (t Transaction) Apply(u TransactionUpdate) Transaction {
	if u.AccountID != nil {
		t.AccountID = *u.AccountID
	}
	if u.CategoryID != nil {
		t.CategoryID = u.CategoryID
	}
	if u.Amount != nil {
		t.Amount = *u.Amount
	}
	if u.Note != nil {
		t.Note = u.Note
	}
	if u.TransactionDate != nil {
		t.TransactionDate = *u.TransactionDate
	}
	if u.LinkedTransactionID != nil {
		t.LinkedTransactionID = u.LinkedTransactionID
	}
	if u.IsDeleted != nil {
		t.IsDeleted = *u.IsDeleted
	}
	if !u.UpdatedAt.IsZero() {
		t.UpdatedAt = u.UpdatedAt
	}
	return t
}

// TransactionFilter narrows a transaction listing. Nil fields match
// everything; the date bounds are inclusive.
type TransactionFilter struct {
	AccountID *string
	Type      *TransactionType
	StartDate *time.Time
	EndDate   *time.Time
}

// Match reports whether t passes every set condition of the filter.
func (f TransactionFilter) Match(t Transaction) bool {
	if f.AccountID != nil && t.AccountID != *f.AccountID {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.StartDate != nil && t.TransactionDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.TransactionDate.After(*f.EndDate) {
		return false
	}
	return true
}
