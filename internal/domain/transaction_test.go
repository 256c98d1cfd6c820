package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

const (
	testTransactionID = "6f1c2a7e-3b4d-4e5f-8a9b-0c1d2e3f4a5b"
	testAccountID     = "2a0e99a1-53e5-4b9f-ba3b-1c6e0c48276f"
)

func mustTransactionID(t *testing.T, raw string) TransactionID {
	t.Helper()
	id, err := NewTransactionID(raw)
	if err != nil {
		t.Fatalf("unexpected id error: %v", err)
	}
	return id
}

func mustAccountID(t *testing.T, raw string) AccountID {
	t.Helper()
	id, err := NewAccountID(raw)
	if err != nil {
		t.Fatalf("unexpected id error: %v", err)
	}
	return id
}

func TestNewTransaction(t *testing.T) {
	t.Parallel()

	id := mustTransactionID(t, testTransactionID)
	accountID := mustAccountID(t, testAccountID)
	date := time.Date(2025, time.January, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		txName    string
		category  string
		txType    TransactionType
		amount    decimal.Decimal
		date      time.Time
		wantField string
	}{
		{"valid", "  Rent ", " Housing ", TransactionTypeExpense, decimal.NewFromInt(1200), date, ""},
		{"empty name", "   ", "Housing", TransactionTypeExpense, decimal.NewFromInt(1), date, "name"},
		{"name too long", strings.Repeat("a", MaxNameLength+1), "Housing", TransactionTypeExpense, decimal.NewFromInt(1), date, "name"},
		{"empty category", "Rent", "", TransactionTypeExpense, decimal.NewFromInt(1), date, "category"},
		{"unknown type", "Rent", "Housing", TransactionType("TRANSFER"), decimal.NewFromInt(1), date, "type"},
		{"zero amount", "Rent", "Housing", TransactionTypeIncome, decimal.Zero, date, "amount"},
		{"negative amount", "Rent", "Housing", TransactionTypeIncome, decimal.NewFromInt(-5), date, "amount"},
		{"amount beyond storage scale", "Rent", "Housing", TransactionTypeIncome, decimal.RequireFromString("1.23456"), date, "amount"},
		{"zero date", "Rent", "Housing", TransactionTypeIncome, decimal.NewFromInt(5), time.Time{}, "date"},
		{"first failing field wins", "", "", TransactionType("x"), decimal.Zero, time.Time{}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := NewTransaction(id, accountID, tt.txName, tt.category, tt.txType, tt.amount, tt.date)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if tx.Name() != "Rent" || tx.Category() != "Housing" {
					t.Fatalf("expected trimmed fields, got %q/%q", tx.Name(), tx.Category())
				}
				return
			}

			if tx != nil {
				t.Fatalf("expected no transaction on failure, got %+v", tx)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Fatalf("expected field %q, got %q", tt.wantField, verr.Field)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected errors.Is ErrValidation")
			}
		})
	}
}

func TestNewTransaction_RequiresIdentifiers(t *testing.T) {
	t.Parallel()

	date := time.Now()
	_, err := NewTransaction(TransactionID{}, mustAccountID(t, testAccountID), "a", "b", TransactionTypeIncome, decimal.NewFromInt(1), date)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty id, got %v", err)
	}

	_, err = NewTransaction(mustTransactionID(t, testTransactionID), AccountID{}, "a", "b", TransactionTypeIncome, decimal.NewFromInt(1), date)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty account id, got %v", err)
	}
}

func TestTransaction_RenameSkipsValidation(t *testing.T) {
	t.Parallel()

	tx, err := NewTransaction(
		mustTransactionID(t, testTransactionID),
		mustAccountID(t, testAccountID),
		"Groceries", "Food", TransactionTypeExpense, decimal.NewFromInt(30), time.Now(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tx.Rename("")
	if tx.Name() != "" {
		t.Fatalf("expected empty name after rename, got %q", tx.Name())
	}

	tx.Rename("  spaced  ")
	if tx.Name() != "  spaced  " {
		t.Fatalf("expected rename to keep value untouched, got %q", tx.Name())
	}
}

func TestTransaction_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	tx, err := NewTransaction(
		mustTransactionID(t, testTransactionID),
		mustAccountID(t, testAccountID),
		"Salary", "Work", TransactionTypeIncome, decimal.NewFromInt(1000), time.Now(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clone := tx.Clone()
	clone.Rename("Bonus")

	if tx.Name() != "Salary" {
		t.Fatalf("expected original untouched, got %q", tx.Name())
	}
}

func TestParseTransactionType(t *testing.T) {
	t.Parallel()

	if got, err := ParseTransactionType(" income "); err != nil || got != TransactionTypeIncome {
		t.Fatalf("expected INCOME, got %q (%v)", got, err)
	}

	if got, err := ParseTransactionType("EXPENSE"); err != nil || got != TransactionTypeExpense {
		t.Fatalf("expected EXPENSE, got %q (%v)", got, err)
	}

	if _, err := ParseTransactionType("refund"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
