package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/walletsavior/walletsavior/internal/domain"
)

// BankAccountUseCase handles bank account business logic.
type BankAccountUseCase struct {
	repo  BankAccountRepository
	idGen IDGenerator
}

// NewBankAccountUseCase creates a new BankAccountUseCase.
func NewBankAccountUseCase(repo BankAccountRepository, idGen IDGenerator) *BankAccountUseCase {
	return &BankAccountUseCase{
		repo:  repo,
		idGen: idGen,
	}
}

// CreateBankAccountInput represents input for creating a bank account.
type CreateBankAccountInput struct {
	Owner     domain.UserID
	Name      string
	Overdraft decimal.Decimal
	Currency  string
	Balance   decimal.Decimal
}

// CreateBankAccount creates a new bank account owned by input.Owner.
func (uc *BankAccountUseCase) CreateBankAccount(ctx context.Context, input CreateBankAccountInput) (*domain.BankAccount, error) {
	id, err := domain.NewAccountID(uc.idGen.Generate())
	if err != nil {
		return nil, fmt.Errorf("generate account id: %w", err)
	}

	// an unsupported code parses to the empty currency, which NewBankAccount
	// rejects after the fields that precede it
	currency, _ := domain.ParseCurrency(input.Currency)

	account, err := domain.NewBankAccount(id, input.Owner, input.Name, input.Overdraft, currency, input.Balance)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetBankAccount retrieves an account owned by requester.
func (uc *BankAccountUseCase) GetBankAccount(ctx context.Context, id string, requester domain.UserID) (*domain.BankAccount, error) {
	accountID, err := domain.NewAccountID(id)
	if err != nil {
		return nil, err
	}

	return uc.owned(ctx, accountID, requester)
}

// ListBankAccounts lists the accounts owned by owner.
func (uc *BankAccountUseCase) ListBankAccounts(ctx context.Context, owner domain.UserID) ([]*domain.BankAccount, error) {
	if owner.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	return uc.repo.ListByOwner(ctx, owner)
}

// Authorize returns domain.ErrBankAccountNotFound for unknown accounts and
// domain.ErrNoAccess for accounts owned by someone else.
func (uc *BankAccountUseCase) Authorize(ctx context.Context, accountID domain.AccountID, user domain.UserID) error {
	_, err := uc.owned(ctx, accountID, user)
	return err
}

func (uc *BankAccountUseCase) owned(ctx context.Context, accountID domain.AccountID, user domain.UserID) (*domain.BankAccount, error) {
	account, err := uc.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !account.OwnedBy(user) {
		return nil, domain.ErrNoAccess
	}

	return account, nil
}
