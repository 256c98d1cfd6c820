package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tells whether a transaction adds to or takes from an account.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// ParseTransactionType accepts the type tag in any letter case.
func ParseTransactionType(raw string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", NewValidationError("type", "must be INCOME or EXPENSE")
	}
	return t, nil
}

// Transaction is a single money movement on a bank account. Amount is a
// magnitude; the direction comes from Type.
type Transaction struct {
	id            TransactionID
	bankAccountID AccountID
	name          string
	category      string
	txType        TransactionType
	amount        decimal.Decimal
	date          time.Time
}

// NewTransaction validates every field in order and fails on the first
// invalid one.
func NewTransaction(
	id TransactionID,
	bankAccountID AccountID,
	name, category string,
	txType TransactionType,
	amount decimal.Decimal,
	date time.Time,
) (*Transaction, error) {
	if id.IsZero() {
		return nil, NewValidationError("id", "must not be empty")
	}

	if bankAccountID.IsZero() {
		return nil, NewValidationError("bank_account_id", "must not be empty")
	}

	name, err := ValidateText("name", name, MaxNameLength)
	if err != nil {
		return nil, err
	}

	category, err = ValidateText("category", category, MaxCategoryLength)
	if err != nil {
		return nil, err
	}

	if !txType.IsValid() {
		return nil, NewValidationError("type", "must be INCOME or EXPENSE")
	}

	if err := ValidatePositiveAmount("amount", amount); err != nil {
		return nil, err
	}

	if err := ValidateDate("date", date); err != nil {
		return nil, err
	}

	return &Transaction{
		id:            id,
		bankAccountID: bankAccountID,
		name:          name,
		category:      category,
		txType:        txType,
		amount:        amount,
		date:          date,
	}, nil
}

// RestoreTransaction rebuilds a transaction from persisted state without
// validation. Stored rows may carry names set through Rename.
func RestoreTransaction(
	id TransactionID,
	bankAccountID AccountID,
	name, category string,
	txType TransactionType,
	amount decimal.Decimal,
	date time.Time,
) *Transaction {
	return &Transaction{
		id:            id,
		bankAccountID: bankAccountID,
		name:          name,
		category:      category,
		txType:        txType,
		amount:        amount,
		date:          date,
	}
}

func (t *Transaction) ID() TransactionID { return t.id }
func (t *Transaction) BankAccountID() AccountID { return t.bankAccountID }
func (t *Transaction) Name() string { return t.name }
func (t *Transaction) Category() string { return t.category }
func (t *Transaction) Type() TransactionType { return t.txType }
func (t *Transaction) Amount() decimal.Decimal { return t.amount }
func (t *Transaction) Date() time.Time { return t.date }
func (t *Transaction) IsIncome() bool { return t.txType == TransactionTypeIncome }
func (t *Transaction) IsExpense() bool { return t.txType == TransactionTypeExpense }

// Rename replaces the name as given. It does not validate: callers that need
// the constructor's name rules must check newName themselves.
func (t *Transaction) Rename(newName string) {
	t.name = newName
}

// Clone returns an independent copy.
func (t *Transaction) Clone() *Transaction {
	c := *t
	return &c
}
