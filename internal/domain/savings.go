package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Month is a calendar month in a specific time zone. Index is zero-based
// (0 = January).
type Month struct {
	Year     int
	Index    int
	Location *time.Location
}

// NewMonth validates year and the zero-based month index. A nil location
// means UTC.
func NewMonth(year, index int, loc *time.Location) (Month, error) {
	if year < 1 || year > 9999 {
		return Month{}, NewValidationError("year", "must be between 1 and 9999")
	}

	if index < 0 || index > 11 {
		return Month{}, NewValidationError("month", "must be between 0 and 11")
	}

	if loc == nil {
		loc = time.UTC
	}

	return Month{Year: year, Index: index, Location: loc}, nil
}

// Contains reports whether t falls inside the month, evaluated in the
// month's location.
func (m Month) Contains(t time.Time) bool {
	local := t.In(m.Location)
	return local.Year() == m.Year && int(local.Month())-1 == m.Index
}

// NetSavings sums income minus expenses over the transactions dated inside
// month. An empty month yields zero.
func NetSavings(transactions []*Transaction, month Month) decimal.Decimal {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, t := range transactions {
		if !month.Contains(t.Date()) {
			continue
		}

		switch t.Type() {
		case TransactionTypeIncome:
			income = income.Add(t.Amount())
		case TransactionTypeExpense:
			expenses = expenses.Add(t.Amount())
		}
	}

	return income.Sub(expenses)
}
