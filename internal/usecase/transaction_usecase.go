package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletsavior/walletsavior/internal/domain"
)

// TransactionUseCase handles transaction intake and retrieval.
type TransactionUseCase struct {
	ledger TransactionLedger
	idGen  IDGenerator
	access AccountAuthorizer
}

// NewTransactionUseCase creates a new TransactionUseCase. A nil access skips
// ownership checks; otherwise every call needs a requester who owns the
// account.
func NewTransactionUseCase(ledger TransactionLedger, idGen IDGenerator, access AccountAuthorizer) *TransactionUseCase {
	return &TransactionUseCase{
		ledger: ledger,
		idGen:  idGen,
		access: access,
	}
}

// AddTransactionInput represents input for recording a transaction.
type AddTransactionInput struct {
	BankAccountID string
	Name          string
	Category      string
	Type          string
	Amount        decimal.Decimal
	Date          time.Time
	// Requester must own the account unless ownership checks are disabled.
	Requester domain.UserID
}

// AddTransaction validates the input, stores a new transaction and returns it.
// Validation and storage errors are returned unchanged.
func (uc *TransactionUseCase) AddTransaction(ctx context.Context, input AddTransactionInput) (*domain.Transaction, error) {
	tx, err := uc.build(input)
	if err != nil {
		return nil, err
	}

	if err := uc.authorize(ctx, tx.BankAccountID(), input.Requester); err != nil {
		return nil, err
	}

	if err := uc.ledger.Append(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// AddTransactions validates every input before storing any of them. Ledgers
// implementing BatchAppender store the batch atomically; otherwise the
// transactions are appended in order and the first failure is returned.
func (uc *TransactionUseCase) AddTransactions(ctx context.Context, inputs []AddTransactionInput) ([]*domain.Transaction, error) {
	if len(inputs) == 0 {
		return nil, domain.NewValidationError("transactions", "must not be empty")
	}

	if len(inputs) > MaxBatchSize {
		return nil, domain.NewValidationError("transactions", fmt.Sprintf("exceeds %d items", MaxBatchSize))
	}

	txs := make([]*domain.Transaction, 0, len(inputs))
	for _, input := range inputs {
		tx, err := uc.build(input)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	checked := make(map[domain.AccountID]bool)
	for i, tx := range txs {
		if checked[tx.BankAccountID()] {
			continue
		}
		if err := uc.authorize(ctx, tx.BankAccountID(), inputs[i].Requester); err != nil {
			return nil, err
		}
		checked[tx.BankAccountID()] = true
	}

	if batch, ok := uc.ledger.(BatchAppender); ok {
		if err := batch.AppendAll(ctx, txs); err != nil {
			return nil, err
		}
		return txs, nil
	}

	for _, tx := range txs {
		if err := uc.ledger.Append(ctx, tx); err != nil {
			return nil, err
		}
	}

	return txs, nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string, requester domain.UserID) (*domain.Transaction, error) {
	txID, err := domain.NewTransactionID(id)
	if err != nil {
		return nil, err
	}

	tx, err := uc.ledger.FindByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrTransactionNotFound
	}

	if err := uc.authorize(ctx, tx.BankAccountID(), requester); err != nil {
		return nil, err
	}

	return tx, nil
}

// ListTransactionsInput represents input for listing an account's transactions.
type ListTransactionsInput struct {
	BankAccountID string
	Requester     domain.UserID
	Limit         int
	Offset        int
}

// ListTransactions lists an account's transactions, newest first.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	accountID, err := domain.NewAccountID(input.BankAccountID)
	if err != nil {
		return nil, err
	}

	if err := uc.authorize(ctx, accountID, input.Requester); err != nil {
		return nil, err
	}

	page := Page{Limit: input.Limit, Offset: input.Offset}.Normalize()
	return uc.ledger.ListByAccount(ctx, accountID, &page)
}

// RenameTransactionInput represents input for renaming a transaction.
type RenameTransactionInput struct {
	ID        string
	Name      string
	Requester domain.UserID
}

// RenameTransaction applies Transaction.Rename and stores the result. The new
// name is not validated.
func (uc *TransactionUseCase) RenameTransaction(ctx context.Context, input RenameTransactionInput) (*domain.Transaction, error) {
	tx, err := uc.GetTransaction(ctx, input.ID, input.Requester)
	if err != nil {
		return nil, err
	}

	tx.Rename(input.Name)

	if err := uc.ledger.Replace(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (uc *TransactionUseCase) build(input AddTransactionInput) (*domain.Transaction, error) {
	id, err := domain.NewTransactionID(uc.idGen.Generate())
	if err != nil {
		return nil, fmt.Errorf("generate transaction id: %w", err)
	}

	accountID, err := domain.NewAccountID(input.BankAccountID)
	if err != nil {
		return nil, err
	}

	// an unknown tag parses to the empty type, which NewTransaction rejects
	// after the fields that precede it
	txType, _ := domain.ParseTransactionType(input.Type)

	return domain.NewTransaction(id, accountID, input.Name, input.Category, txType, input.Amount, input.Date)
}

func (uc *TransactionUseCase) authorize(ctx context.Context, accountID domain.AccountID, requester domain.UserID) error {
	return requireOwner(ctx, uc.access, accountID, requester)
}

// requireOwner returns domain.ErrUnauthorized for an anonymous requester. A nil
// access disables the check.
func requireOwner(ctx context.Context, access AccountAuthorizer, accountID domain.AccountID, requester domain.UserID) error {
	if access == nil {
		return nil
	}
	if requester.IsZero() {
		return domain.ErrUnauthorized
	}
	return access.Authorize(ctx, accountID, requester)
}
