package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/walletsavior/walletsavior/internal/domain"
	"github.com/walletsavior/walletsavior/internal/usecase/mocks"
)

func testAccount(t *testing.T) *domain.BankAccount {
	t.Helper()

	id, err := domain.NewAccountID(uuid.NewString())
	require.NoError(t, err)
	owner, err := domain.NewUserID("alice")
	require.NoError(t, err)

	account, err := domain.NewBankAccount(id, owner, "Main", decimal.NewFromInt(100), domain.CurrencyJPY, decimal.RequireFromString("12.34"))
	require.NoError(t, err)
	return account
}

func TestCachedBankAccountRepository_ReadThrough(t *testing.T) {
	client, mr := newMiniredisClient(t)

	ctrl := gomock.NewController(t)
	inner := mocks.NewMockBankAccountRepository(ctrl)
	account := testAccount(t)

	inner.EXPECT().GetByID(gomock.Any(), account.ID()).Return(account, nil).Times(1)

	repo := NewCachedBankAccountRepository(inner, NewCache(client), time.Minute)
	ctx := context.Background()

	first, err := repo.GetByID(ctx, account.ID())
	require.NoError(t, err)
	assert.True(t, first.ID().Equal(account.ID()))

	second, err := repo.GetByID(ctx, account.ID())
	require.NoError(t, err)
	assert.Equal(t, "Main", second.Name())
	assert.True(t, second.Balance().Equal(account.Balance()))
	assert.True(t, second.OwnedBy(account.OwnerID()))

	assert.True(t, mr.Exists("walletsavior:cache:bank_account:"+account.ID().String()))
}

func TestCachedBankAccountRepository_CreateWarmsCache(t *testing.T) {
	client, _ := newMiniredisClient(t)

	ctrl := gomock.NewController(t)
	inner := mocks.NewMockBankAccountRepository(ctrl)
	account := testAccount(t)

	inner.EXPECT().Create(gomock.Any(), account).Return(nil)

	repo := NewCachedBankAccountRepository(inner, NewCache(client), time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, account))

	got, err := repo.GetByID(ctx, account.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyJPY, got.Currency())
}

func TestCachedBankAccountRepository_FallsBackWhenRedisDown(t *testing.T) {
	client, mr := newMiniredisClient(t)

	ctrl := gomock.NewController(t)
	inner := mocks.NewMockBankAccountRepository(ctrl)
	account := testAccount(t)

	inner.EXPECT().GetByID(gomock.Any(), account.ID()).Return(account, nil)

	repo := NewCachedBankAccountRepository(inner, NewCache(client), time.Minute)
	mr.Close()

	got, err := repo.GetByID(context.Background(), account.ID())
	require.NoError(t, err)
	assert.True(t, got.ID().Equal(account.ID()))
}

func TestCachedBankAccountRepository_NotFoundPassesThrough(t *testing.T) {
	client, _ := newMiniredisClient(t)

	ctrl := gomock.NewController(t)
	inner := mocks.NewMockBankAccountRepository(ctrl)
	id, _ := domain.NewAccountID(uuid.NewString())

	inner.EXPECT().GetByID(gomock.Any(), id).Return(nil, domain.ErrBankAccountNotFound)

	repo := NewCachedBankAccountRepository(inner, NewCache(client), time.Minute)
	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrBankAccountNotFound)
}

func TestCachedBankAccountRepository_EvictsCorruptEntry(t *testing.T) {
	client, mr := newMiniredisClient(t)

	ctrl := gomock.NewController(t)
	inner := mocks.NewMockBankAccountRepository(ctrl)
	id, _ := domain.NewAccountID(uuid.NewString())
	key := "walletsavior:cache:bank_account:" + id.String()

	require.NoError(t, mr.Set(key, "{not json"))
	inner.EXPECT().GetByID(gomock.Any(), id).Return(nil, domain.ErrBankAccountNotFound)

	repo := NewCachedBankAccountRepository(inner, NewCache(client), time.Minute)
	_, err := repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrBankAccountNotFound)
	assert.False(t, mr.Exists(key), "corrupt entry must be evicted")
}
