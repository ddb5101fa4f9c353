// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySummary aggregates the income and expenses of one calendar month.
type MonthlySummary struct {
	// Month is formatted as YYYY-MM.
	Month string `json:"month"`

	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	IncomeCount   int             `json:"incomeCount"`
	ExpenseCount  int             `json:"expenseCount"`

	// TopCategories holds the largest expense categories, largest first.
	TopCategories []CategorySummary `json:"topCategories"`
}

// CategorySummary is the share of one category in a set of transactions.
type CategorySummary struct {
	CategoryID       string          `json:"categoryId"`
	CategoryName     string          `json:"categoryName"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TransactionCount int             `json:"transactionCount"`

	// Percentage is relative to the total of every grouped transaction,
	// rounded to two decimal places.
	Percentage decimal.Decimal `json:"percentage"`
}

// CategoryBreakdownQuery selects the transactions grouped by a category
// breakdown. Start and End are inclusive.
type CategoryBreakdownQuery struct {
	Start      time.Time
	End        time.Time
	Type       *TransactionType
	CategoryID *string
}

// BudgetStatus tells how much of a budget has been spent.
type BudgetStatus string

const (
	BudgetUnder BudgetStatus = "under"
	BudgetNear  BudgetStatus = "near"
	BudgetOver  BudgetStatus = "over"
)

// BudgetVsActual compares a monthly budget with the actual spending of its
// category.
type BudgetVsActual struct {
	BudgetID     string          `json:"budgetId"`
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	ActualAmount decimal.Decimal `json:"actualAmount"`

	// Difference is the budget left; negative once overspent.
	Difference     decimal.Decimal `json:"difference"`
	PercentageUsed decimal.Decimal `json:"percentageUsed"`
	Status         BudgetStatus    `json:"status"`
}
