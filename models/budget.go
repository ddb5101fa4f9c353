// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/shopspring/decimal"

// Budget is a monthly spending limit for a category.
type Budget struct {
	SyncMeta

	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`

	// Month is formatted as YYYY-MM.
	Month string `json:"month"`
}

func (b Budget) Kind() EntityKind { return EntityBudget }

func (b Budget) WithOwner(userID string) Budget {
	b.UserID = userID
	return b
}

// CategoryType is the direction of money a [Category] groups.
type CategoryType string

const (
	CategoryIncome  CategoryType = "INCOME"
	CategoryExpense CategoryType = "EXPENSE"
)

// Category groups income or expense transactions.
type Category struct {
	SyncMeta

	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

func (c Category) Kind() EntityKind { return EntityCategory }

func (c Category) WithOwner(userID string) Category {
	c.UserID = userID
	return c
}
