// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/shopspring/decimal"

// AccountType is the kind of money container an [Account] represents.
type AccountType string

const (
	AccountCash       AccountType = "CASH"
	AccountBank       AccountType = "BANK"
	AccountWallet     AccountType = "WALLET"
	AccountCreditCard AccountType = "CREDIT_CARD"
)

// Account is a user-owned money container. Its balance is not stored: it is
// OpeningBalance plus the sum of the amounts of its live transactions.
type Account struct {
	SyncMeta

	// Name is the display name, also used in default transfer notes.
	Name string `json:"name"`

	// Type is one of CASH, BANK, WALLET or CREDIT_CARD.
	Type AccountType `json:"type"`

	// Currency is an ISO 4217 three-letter code.
	Currency string `json:"currency"`

	// OpeningBalance is the balance the account started with.
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

func (a Account) Kind() EntityKind { return EntityAccount }

func (a Account) WithOwner(userID string) Account {
	a.UserID = userID
	return a
}
