package http

import (
	"fmt"
	"net/url"
	"time"

	"github.com/MKhiriev/go-finance-tracker/models"
)

const dateLayout = "2006-01-02"

// optionalString returns nil for an absent or empty parameter.
func optionalString(q url.Values, key string) *string {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func optionalTransactionType(q url.Values, key string) (*models.TransactionType, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}

	t := models.TransactionType(v)
	switch t {
	case models.TransactionIncome, models.TransactionExpense, models.TransactionTransfer:
		return &t, nil
	default:
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, key, v)
	}
}

// optionalDate accepts RFC 3339 or a bare YYYY-MM-DD date. A bare date used
// as an upper bound covers the whole day.
func optionalDate(q url.Values, key string, endOfDay bool) (*time.Time, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}

	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, key, v)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

func requiredDate(q url.Values, key string, endOfDay bool) (time.Time, error) {
	t, err := optionalDate(q, key, endOfDay)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidQuery, key)
	}
	return *t, nil
}

func transactionFilterFromQuery(q url.Values) (models.TransactionFilter, error) {
	filter := models.TransactionFilter{AccountID: optionalString(q, "accountId")}

	var err error
	if filter.Type, err = optionalTransactionType(q, "type"); err != nil {
		return models.TransactionFilter{}, err
	}
	if filter.StartDate, err = optionalDate(q, "startDate", false); err != nil {
		return models.TransactionFilter{}, err
	}
	if filter.EndDate, err = optionalDate(q, "endDate", true); err != nil {
		return models.TransactionFilter{}, err
	}
	return filter, nil
}
