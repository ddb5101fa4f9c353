// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLegs() TransferLegs {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return TransferLegs{
		DebitID:         "debit-1",
		CreditID:        "credit-1",
		UserID:          "user-1",
		From:            Account{SyncMeta: SyncMeta{ID: "acc-a"}, Name: "Wallet"},
		To:              Account{SyncMeta: SyncMeta{ID: "acc-b"}, Name: "Savings"},
		Amount:          decimal.RequireFromString("50.25"),
		TransactionDate: now,
		Now:             now,
	}
}

func TestTransferLegs_Build(t *testing.T) {
	debit, credit := testLegs().Build()

	assert.Equal(t, "acc-a", debit.AccountID)
	assert.Equal(t, "acc-b", credit.AccountID)
	assert.True(t, debit.Amount.Equal(decimal.RequireFromString("-50.25")))
	assert.True(t, credit.Amount.Equal(decimal.RequireFromString("50.25")))
	assert.Equal(t, TransactionTransfer, debit.Type)
	assert.Equal(t, TransactionTransfer, credit.Type)
	require.NotNil(t, debit.LinkedTransactionID)
	require.NotNil(t, credit.LinkedTransactionID)
	assert.Equal(t, "credit-1", *debit.LinkedTransactionID)
	assert.Equal(t, "debit-1", *credit.LinkedTransactionID)
	assert.Equal(t, "Transfer to Savings", *debit.Note)
	assert.Equal(t, "Transfer from Wallet", *credit.Note)
	assert.Equal(t, debit.TransactionDate, credit.TransactionDate)
}

func TestTransferLegs_Build_NegativeAmountAndNote(t *testing.T) {
	legs := testLegs()
	legs.Amount = decimal.NewFromInt(-10)
	note := "rent split"
	legs.Note = &note

	debit, credit := legs.Build()

	assert.True(t, debit.Amount.Equal(decimal.NewFromInt(-10)))
	assert.True(t, credit.Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "rent split", *debit.Note)
	assert.Equal(t, "rent split", *credit.Note)
}

func TestValidateTransferPair(t *testing.T) {
	debit, credit := testLegs().Build()

	tests := []struct {
		name    string
		a, b    func() (Transaction, Transaction)
		wantErr error
	}{
		{
			name: "valid pair in order",
			a:    func() (Transaction, Transaction) { return debit, credit },
		},
		{
			name: "valid pair reversed",
			a:    func() (Transaction, Transaction) { return credit, debit },
		},
		{
			name: "not a transfer",
			a: func() (Transaction, Transaction) {
				c := credit
				c.Type = TransactionIncome
				return debit, c
			},
			wantErr: ErrTransferLegNotTransfer,
		},
		{
			name: "not linked",
			a: func() (Transaction, Transaction) {
				c := credit
				other := "someone-else"
				c.LinkedTransactionID = &other
				return debit, c
			},
			wantErr: ErrTransferLegsNotLinked,
		},
		{
			name: "missing link",
			a: func() (Transaction, Transaction) {
				d := debit
				d.LinkedTransactionID = nil
				return d, credit
			},
			wantErr: ErrTransferLegsNotLinked,
		},
		{
			name: "same account",
			a: func() (Transaction, Transaction) {
				c := credit
				c.AccountID = debit.AccountID
				return debit, c
			},
			wantErr: ErrTransferSameAccount,
		},
		{
			name: "amounts do not cancel",
			a: func() (Transaction, Transaction) {
				c := credit
				c.Amount = decimal.NewFromInt(49)
				return debit, c
			},
			wantErr: ErrTransferAmountsInvalid,
		},
		{
			name: "zero amounts",
			a: func() (Transaction, Transaction) {
				d, c := debit, credit
				d.Amount, c.Amount = decimal.Zero, decimal.Zero
				return d, c
			},
			wantErr: ErrTransferAmountsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := tt.a()
			gotDebit, gotCredit, err := ValidateTransferPair(a, b)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "debit-1", gotDebit.ID)
			assert.Equal(t, "credit-1", gotCredit.ID)
		})
	}
}
