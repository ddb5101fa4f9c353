package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/models"
)

const (
	monthLayout = "2006-01"

	// topCategoriesLimit caps MonthlySummary.TopCategories.
	topCategoriesLimit = 5

	budgetNearPercent = 80
	budgetOverPercent = 100
)

var hundred = decimal.NewFromInt(100)

// reportService is the concrete implementation of ReportService. Reports
// read the ledger and never write; tombstones are left out of every figure.
type reportService struct {
	ledger store.LedgerStore
}

func NewReportService(ledger store.LedgerStore) ReportService {
	return &reportService{ledger: ledger}
}

func (s *reportService) MonthlySummary(ctx context.Context, userID, month string, accountID *string) (models.MonthlySummary, error) {
	start, end, err := parseMonth(month)
	if err != nil {
		return models.MonthlySummary{}, err
	}

	transactions, err := s.liveTransactions(ctx, userID, models.TransactionFilter{
		AccountID: accountID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return models.MonthlySummary{}, err
	}

	names, err := s.categoryNames(ctx, userID)
	if err != nil {
		return models.MonthlySummary{}, err
	}

	summary := models.MonthlySummary{
		Month:         month,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	var expenses []models.Transaction
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionIncome:
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
			summary.IncomeCount++
		case models.TransactionExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(t.Amount)
			summary.ExpenseCount++
			expenses = append(expenses, t)
		}
	}
	summary.NetIncome = summary.TotalIncome.Sub(summary.TotalExpenses)

	top := groupByCategory(expenses, names)
	if len(top) > topCategoriesLimit {
		top = top[:topCategoriesLimit]
	}
	summary.TopCategories = top

	return summary, nil
}

func (s *reportService) CategoryBreakdown(ctx context.Context, userID string, query models.CategoryBreakdownQuery) ([]models.CategorySummary, error) {
	if query.End.Before(query.Start) {
		return nil, fmt.Errorf("%w: %w: end date is before start date", ErrInvalidDataProvided, ErrInvalidReportPeriod)
	}

	transactions, err := s.liveTransactions(ctx, userID, models.TransactionFilter{
		Type:      query.Type,
		StartDate: &query.Start,
		EndDate:   &query.End,
	})
	if err != nil {
		return nil, err
	}

	if query.CategoryID != nil {
		transactions = slices.DeleteFunc(transactions, func(t models.Transaction) bool {
			return t.CategoryID == nil || *t.CategoryID != *query.CategoryID
		})
	}

	names, err := s.categoryNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	return groupByCategory(transactions, names), nil
}

func (s *reportService) BudgetVsActual(ctx context.Context, userID, month string) ([]models.BudgetVsActual, error) {
	start, end, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	budgets, err := s.ledger.Budgets().FindSince(ctx, userID, time.Time{})
	if err != nil {
		return nil, s.readFailed(ctx, "BudgetVsActual", userID, err)
	}

	expense := models.TransactionExpense
	transactions, err := s.liveTransactions(ctx, userID, models.TransactionFilter{
		Type:      &expense,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, err
	}

	spent := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.CategoryID == nil {
			continue
		}
		spent[*t.CategoryID] = spent[*t.CategoryID].Add(t.Amount)
	}

	names, err := s.categoryNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]models.BudgetVsActual, 0, len(budgets))
	for _, b := range budgets {
		if b.IsDeleted || b.Month != month {
			continue
		}

		actual := spent[b.CategoryID]
		used := percentOf(actual, b.Amount)
		result = append(result, models.BudgetVsActual{
			BudgetID:       b.ID,
			CategoryID:     b.CategoryID,
			CategoryName:   names[b.CategoryID],
			BudgetAmount:   b.Amount,
			ActualAmount:   actual,
			Difference:     b.Amount.Sub(actual),
			PercentageUsed: used,
			Status:         budgetStatus(used),
		})
	}

	slices.SortFunc(result, func(a, b models.BudgetVsActual) int {
		return cmp.Or(cmp.Compare(a.CategoryName, b.CategoryName), cmp.Compare(a.BudgetID, b.BudgetID))
	})

	return result, nil
}

// liveTransactions returns the user's non-deleted transactions passing
// filter, in ledger order.
func (s *reportService) liveTransactions(ctx context.Context, userID string, filter models.TransactionFilter) ([]models.Transaction, error) {
	all, err := s.ledger.Transactions().FindSince(ctx, userID, time.Time{})
	if err != nil {
		return nil, s.readFailed(ctx, "liveTransactions", userID, err)
	}

	var live []models.Transaction
	for _, t := range all {
		if !t.IsDeleted && filter.Match(t) {
			live = append(live, t)
		}
	}
	return live, nil
}

// categoryNames maps every category id of the user to its name. Deleted
// categories keep naming the transactions filed under them.
func (s *reportService) categoryNames(ctx context.Context, userID string) (map[string]string, error) {
	categories, err := s.ledger.Categories().FindSince(ctx, userID, time.Time{})
	if err != nil {
		return nil, s.readFailed(ctx, "categoryNames", userID, err)
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (s *reportService) readFailed(ctx context.Context, fn, userID string, err error) error {
	logger.FromContext(ctx).Err(err).
		Str("func", "reportService."+fn).
		Str("user_id", userID).
		Msg("failed to read ledger")
	return fmt.Errorf("%w: %w", ErrReportFailed, err)
}

// groupByCategory sums transactions per category, largest total first.
// Uncategorized transactions, transfer legs among them, are skipped but
// still count towards the total the percentages are taken of.
func groupByCategory(transactions []models.Transaction, names map[string]string) []models.CategorySummary {
	grand := decimal.Zero
	byID := make(map[string]*models.CategorySummary)
	for _, t := range transactions {
		grand = grand.Add(t.Amount)
		if t.CategoryID == nil {
			continue
		}

		summary, ok := byID[*t.CategoryID]
		if !ok {
			summary = &models.CategorySummary{
				CategoryID:   *t.CategoryID,
				CategoryName: names[*t.CategoryID],
				TotalAmount:  decimal.Zero,
			}
			byID[*t.CategoryID] = summary
		}
		summary.TotalAmount = summary.TotalAmount.Add(t.Amount)
		summary.TransactionCount++
	}

	result := make([]models.CategorySummary, 0, len(byID))
	for _, summary := range byID {
		summary.Percentage = percentOf(summary.TotalAmount, grand)
		result = append(result, *summary)
	}

	slices.SortFunc(result, func(a, b models.CategorySummary) int {
		return cmp.Or(b.TotalAmount.Cmp(a.TotalAmount), cmp.Compare(a.CategoryID, b.CategoryID))
	})
	return result
}

// percentOf returns part as a percentage of whole, rounded to two places.
// A zero whole yields zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Round(2)
}

func budgetStatus(percentageUsed decimal.Decimal) models.BudgetStatus {
	switch {
	case percentageUsed.GreaterThanOrEqual(decimal.NewFromInt(budgetOverPercent)):
		return models.BudgetOver
	case percentageUsed.GreaterThanOrEqual(decimal.NewFromInt(budgetNearPercent)):
		return models.BudgetNear
	default:
		return models.BudgetUnder
	}
}

// parseMonth returns the first and the last instant of a YYYY-MM month in
// UTC.
func parseMonth(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %w: month %q must be YYYY-MM", ErrInvalidDataProvided, ErrInvalidReportPeriod, month)
	}
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end, nil
}
