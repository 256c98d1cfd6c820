package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/walletsavior/walletsavior/internal/domain"
)

// BankAccountRepository keeps bank accounts in process memory.
type BankAccountRepository struct {
	mu       sync.RWMutex
	accounts map[domain.AccountID]*domain.BankAccount
}

// NewBankAccountRepository creates an empty BankAccountRepository.
func NewBankAccountRepository() *BankAccountRepository {
	return &BankAccountRepository{accounts: make(map[domain.AccountID]*domain.BankAccount)}
}

func (r *BankAccountRepository) Create(ctx context.Context, account *domain.BankAccount) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStorageError("create bank account", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID()]; ok {
		return domain.NewStorageError("create bank account", fmt.Errorf("bank account %s already exists", account.ID()))
	}

	r.accounts[account.ID()] = account
	return nil
}

func (r *BankAccountRepository) GetByID(ctx context.Context, id domain.AccountID) (*domain.BankAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewStorageError("get bank account", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrBankAccountNotFound
	}
	return account, nil
}

// ListByOwner returns the owner's accounts sorted by name, then id.
func (r *BankAccountRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.BankAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewStorageError("list bank accounts", err)
	}

	r.mu.RLock()
	result := make([]*domain.BankAccount, 0)
	for _, account := range r.accounts {
		if account.OwnedBy(owner) {
			result = append(result, account)
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name() != result[j].Name() {
			return result[i].Name() < result[j].Name()
		}
		return result[i].ID().String() < result[j].ID().String()
	})

	return result, nil
}
