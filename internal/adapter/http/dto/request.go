package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletsavior/walletsavior/internal/domain"
	"github.com/walletsavior/walletsavior/internal/usecase"
)

// dateOnlyLayout is accepted alongside RFC 3339 timestamps.
const dateOnlyLayout = "2006-01-02"

// ParseDate parses an RFC 3339 timestamp or a plain 2006-01-02 date (UTC midnight).
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domain.NewValidationError("date", "must not be empty")
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}

	if t, err := time.ParseInLocation(dateOnlyLayout, raw, time.UTC); err == nil {
		return t, nil
	}

	return time.Time{}, domain.NewValidationError("date", "must be RFC 3339 or YYYY-MM-DD")
}

// CreateBankAccountRequest represents a request to create a bank account.
type CreateBankAccountRequest struct {
	Name      string          `json:"name"`
	Overdraft decimal.Decimal `json:"overdraft"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBankAccountRequest) ToUseCaseInput(owner domain.UserID) usecase.CreateBankAccountInput {
	return usecase.CreateBankAccountInput{
		Owner:     owner,
		Name:      r.Name,
		Overdraft: r.Overdraft,
		Currency:  r.Currency,
		Balance:   r.Balance,
	}
}

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	BankAccountID string          `json:"bank_account_id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
}

// ToUseCaseInput converts to use case input. An unparseable date fails here,
// before the remaining fields reach domain validation.
func (r *CreateTransactionRequest) ToUseCaseInput(requester domain.UserID) (usecase.AddTransactionInput, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return usecase.AddTransactionInput{}, err
	}

	return usecase.AddTransactionInput{
		BankAccountID: r.BankAccountID,
		Name:          r.Name,
		Category:      r.Category,
		Type:          r.Type,
		Amount:        r.Amount,
		Date:          date,
		Requester:     requester,
	}, nil
}

// CreateBatchTransactionRequest represents a request to record several transactions.
type CreateBatchTransactionRequest struct {
	Transactions []CreateTransactionRequest `json:"transactions"`
}

// ToUseCaseInput converts to use case input. The first unparseable date fails the batch.
func (r *CreateBatchTransactionRequest) ToUseCaseInput(requester domain.UserID) ([]usecase.AddTransactionInput, error) {
	inputs := make([]usecase.AddTransactionInput, len(r.Transactions))
	for i := range r.Transactions {
		input, err := r.Transactions[i].ToUseCaseInput(requester)
		if err != nil {
			return nil, err
		}
		inputs[i] = input
	}
	return inputs, nil
}

// RenameTransactionRequest represents a request to rename a transaction.
type RenameTransactionRequest struct {
	Name string `json:"name"`
}
