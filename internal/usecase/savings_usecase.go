package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletsavior/walletsavior/internal/domain"
)

// SavingsUseCase computes monthly net savings from the ledger.
type SavingsUseCase struct {
	ledger   TransactionLedger
	access   AccountAuthorizer
	location *time.Location
}

// NewSavingsUseCase creates a new SavingsUseCase. Months are evaluated in loc
// unless a call overrides it; a nil loc means UTC.
func NewSavingsUseCase(ledger TransactionLedger, access AccountAuthorizer, loc *time.Location) *SavingsUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &SavingsUseCase{
		ledger:   ledger,
		access:   access,
		location: loc,
	}
}

// NetSavingsInput represents input for computing net savings.
type NetSavingsInput struct {
	BankAccountID string
	Year          int
	// Month is zero-based (0 = January).
	Month int
	// Location overrides the default time zone when set.
	Location  *time.Location
	Requester domain.UserID
}

// NetSavings is the result of a savings computation.
type NetSavings struct {
	BankAccountID domain.AccountID
	Month         domain.Month
	Amount        decimal.Decimal
}

// ComputeNetSavings loads every transaction of the account and returns income
// minus expenses for the requested month.
func (uc *SavingsUseCase) ComputeNetSavings(ctx context.Context, input NetSavingsInput) (*NetSavings, error) {
	accountID, err := domain.NewAccountID(input.BankAccountID)
	if err != nil {
		return nil, err
	}

	loc := input.Location
	if loc == nil {
		loc = uc.location
	}

	month, err := domain.NewMonth(input.Year, input.Month, loc)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(ctx, uc.access, accountID, input.Requester); err != nil {
		return nil, err
	}

	txs, err := uc.ledger.ListByAccount(ctx, accountID, nil)
	if err != nil {
		return nil, err
	}

	return &NetSavings{
		BankAccountID: accountID,
		Month:         month,
		Amount:        domain.NetSavings(txs, month),
	}, nil
}
