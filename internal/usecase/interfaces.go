package usecase

import (
	"context"
	"time"

	"github.com/walletsavior/walletsavior/internal/domain"
)

// Page selects a window of a listing. Use Normalize before applying it.
type Page struct {
	Limit  int
	Offset int
}

// Normalize caps the limit at domain.MaxPageSize and clamps the offset at zero.
func (p Page) Normalize() Page {
	limit, offset := domain.NormalizePage(p.Limit, p.Offset)
	return Page{Limit: limit, Offset: offset}
}

// TransactionLedger defines data access for transactions.
//
// ListByAccount returns transactions most-recent-first by date, ties broken by
// id ascending. A nil page returns the whole set.
//
// FindByID returns (nil, nil) for an id that does not exist.
//
// Replace returns domain.ErrTransactionNotFound when no transaction with the
// id exists. Backend failures are reported as *domain.StorageError.
type TransactionLedger interface {
	Append(ctx context.Context, tx *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID domain.AccountID, page *Page) ([]*domain.Transaction, error)
	FindByID(ctx context.Context, id domain.TransactionID) (*domain.Transaction, error)
	Replace(ctx context.Context, tx *domain.Transaction) error
}

// BatchAppender is implemented by ledgers that can store several
// transactions atomically.
type BatchAppender interface {
	AppendAll(ctx context.Context, txs []*domain.Transaction) error
}

// BankAccountRepository defines data access for bank accounts.
type BankAccountRepository interface {
	Create(ctx context.Context, account *domain.BankAccount) error
	// GetByID returns domain.ErrBankAccountNotFound when absent.
	GetByID(ctx context.Context, id domain.AccountID) (*domain.BankAccount, error)
	ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.BankAccount, error)
}

// AccountAuthorizer checks that an account exists and belongs to a user.
type AccountAuthorizer interface {
	Authorize(ctx context.Context, accountID domain.AccountID, user domain.UserID) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Delete releases a key so that a failed request can be retried.
	Delete(ctx context.Context, key string) error
}
