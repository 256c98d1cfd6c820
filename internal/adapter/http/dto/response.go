package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletsavior/walletsavior/internal/domain"
	"github.com/walletsavior/walletsavior/internal/usecase"
)

// BankAccountResponse represents a bank account in API responses.
type BankAccountResponse struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Name      string          `json:"name"`
	Overdraft decimal.Decimal `json:"overdraft"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
}

// BankAccountFromDomain converts a domain bank account to a response.
func BankAccountFromDomain(a *domain.BankAccount) *BankAccountResponse {
	return &BankAccountResponse{
		ID:        a.ID().String(),
		OwnerID:   a.OwnerID().String(),
		Name:      a.Name(),
		Overdraft: a.Overdraft(),
		Currency:  string(a.Currency()),
		Balance:   a.Balance(),
	}
}

// BankAccountsFromDomain converts domain bank accounts to responses.
func BankAccountsFromDomain(accounts []*domain.BankAccount) []*BankAccountResponse {
	result := make([]*BankAccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = BankAccountFromDomain(a)
	}
	return result
}

// ListBankAccountsResponse represents the caller's bank accounts.
type ListBankAccountsResponse struct {
	Accounts []*BankAccountResponse `json:"accounts"`
	Total    int64                  `json:"total"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID            string          `json:"id"`
	BankAccountID string          `json:"bank_account_id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID().String(),
		BankAccountID: t.BankAccountID().String(),
		Name:          t.Name(),
		Category:      t.Category(),
		Type:          string(t.Type()),
		Amount:        t.Amount(),
		Date:          t.Date(),
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse represents one page of an account's transactions.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Limit        int                    `json:"limit"`
	Offset       int                    `json:"offset"`
}

// BatchTransactionsResponse represents the result of a batch intake.
type BatchTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Count        int                    `json:"count"`
}

// SavingsResponse represents a monthly net savings figure.
type SavingsResponse struct {
	BankAccountID string          `json:"bank_account_id"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	Timezone      string          `json:"timezone"`
	NetSavings    decimal.Decimal `json:"net_savings"`
}

// SavingsFromUseCase converts a savings result to a response.
func SavingsFromUseCase(s *usecase.NetSavings) *SavingsResponse {
	return &SavingsResponse{
		BankAccountID: s.BankAccountID.String(),
		Year:          s.Month.Year,
		Month:         s.Month.Index,
		Timezone:      s.Month.Location.String(),
		NetSavings:    s.Amount,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
