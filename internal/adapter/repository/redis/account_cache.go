package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/walletsavior/walletsavior/internal/domain"
	"github.com/walletsavior/walletsavior/internal/usecase"
)

// CachedBankAccountRepository is a read-through cache in front of a
// usecase.BankAccountRepository. Cache failures fall back to the inner
// repository.
type CachedBankAccountRepository struct {
	inner usecase.BankAccountRepository
	cache *Cache
	ttl   time.Duration
}

// NewCachedBankAccountRepository wraps inner with a Redis cache.
func NewCachedBankAccountRepository(inner usecase.BankAccountRepository, cache *Cache, ttl time.Duration) *CachedBankAccountRepository {
	return &CachedBankAccountRepository{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

type bankAccountRecord struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Name      string          `json:"name"`
	Overdraft decimal.Decimal `json:"overdraft"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
}

// Create stores the account and warms the cache.
func (r *CachedBankAccountRepository) Create(ctx context.Context, account *domain.BankAccount) error {
	if err := r.inner.Create(ctx, account); err != nil {
		return err
	}

	r.store(ctx, account)
	return nil
}

// GetByID serves from the cache when possible.
func (r *CachedBankAccountRepository) GetByID(ctx context.Context, id domain.AccountID) (*domain.BankAccount, error) {
	raw, err := r.cache.Get(ctx, cacheKey(id))
	switch {
	case err == nil:
		account, decodeErr := decodeBankAccount(raw)
		if decodeErr == nil {
			return account, nil
		}
		zerolog.Ctx(ctx).Warn().Err(decodeErr).Str("bank_account_id", id.String()).Msg("discarding corrupt cache entry")
		r.evict(ctx, id)
	case !errors.Is(err, redis.Nil):
		zerolog.Ctx(ctx).Warn().Err(err).Msg("bank account cache unavailable")
	}

	account, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.store(ctx, account)
	return account, nil
}

// ListByOwner is not cached.
func (r *CachedBankAccountRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.BankAccount, error) {
	return r.inner.ListByOwner(ctx, owner)
}

func (r *CachedBankAccountRepository) store(ctx context.Context, account *domain.BankAccount) {
	raw, err := json.Marshal(bankAccountRecord{
		ID:        account.ID().String(),
		OwnerID:   account.OwnerID().String(),
		Name:      account.Name(),
		Overdraft: account.Overdraft(),
		Currency:  string(account.Currency()),
		Balance:   account.Balance(),
	})
	if err != nil {
		return
	}

	if err := r.cache.Set(ctx, cacheKey(account.ID()), raw, r.ttl); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("bank account cache write failed")
	}
}

func (r *CachedBankAccountRepository) evict(ctx context.Context, id domain.AccountID) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("bank account cache eviction failed")
	}
}

func decodeBankAccount(raw []byte) (*domain.BankAccount, error) {
	var rec bankAccountRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}

	id, err := domain.NewAccountID(rec.ID)
	if err != nil {
		return nil, err
	}

	owner, err := domain.NewUserID(rec.OwnerID)
	if err != nil {
		return nil, err
	}

	return domain.NewBankAccount(id, owner, rec.Name, rec.Overdraft, domain.Currency(rec.Currency), rec.Balance)
}

func cacheKey(id domain.AccountID) string {
	return "bank_account:" + id.String()
}
