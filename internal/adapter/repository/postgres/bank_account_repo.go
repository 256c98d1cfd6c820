package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/walletsavior/walletsavior/internal/domain"
)

const (
	insertBankAccountSQL = `
		INSERT INTO bank_accounts (id, owner_id, name, overdraft, currency, balance)
		VALUES ($1, $2, $3, $4, $5, $6)`

	selectBankAccountColumns = `SELECT id, owner_id, name, overdraft::text, currency, balance::text FROM bank_accounts`

	getBankAccountSQL = selectBankAccountColumns + `
		WHERE id = $1`

	listBankAccountsSQL = selectBankAccountColumns + `
		WHERE owner_id = $1
		ORDER BY name, id COLLATE "C"`
)

// BankAccountRepository implements usecase.BankAccountRepository.
type BankAccountRepository struct {
	db      dbtx
	retrier *Retrier
}

// NewBankAccountRepository creates a new BankAccountRepository.
func NewBankAccountRepository(pool *pgxpool.Pool, retrier *Retrier) *BankAccountRepository {
	return newBankAccountWithPool(pool, retrier)
}

func newBankAccountWithPool(db dbtx, retrier *Retrier) *BankAccountRepository {
	return &BankAccountRepository{db: db, retrier: retrier}
}

// Create creates a new bank account.
func (r *BankAccountRepository) Create(ctx context.Context, account *domain.BankAccount) error {
	err := r.retrier.Retry(ctx, func() error {
		_, err := r.db.Exec(ctx, insertBankAccountSQL,
			account.ID().String(),
			account.OwnerID().String(),
			account.Name(),
			decimalToNumeric(account.Overdraft()),
			string(account.Currency()),
			decimalToNumeric(account.Balance()),
		)
		return err
	})

	return storageError("create bank account", err)
}

// GetByID retrieves a bank account by ID.
func (r *BankAccountRepository) GetByID(ctx context.Context, id domain.AccountID) (*domain.BankAccount, error) {
	account, err := scanBankAccount(r.db.QueryRow(ctx, getBankAccountSQL, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBankAccountNotFound
		}
		return nil, storageError("get bank account", err)
	}
	return account, nil
}

// ListByOwner lists the owner's bank accounts ordered by name.
func (r *BankAccountRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.BankAccount, error) {
	rows, err := r.db.Query(ctx, listBankAccountsSQL, owner.String())
	if err != nil {
		return nil, storageError("list bank accounts", err)
	}
	defer rows.Close()

	accounts := make([]*domain.BankAccount, 0)
	for rows.Next() {
		account, err := scanBankAccount(rows)
		if err != nil {
			return nil, storageError("list bank accounts", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("list bank accounts", err)
	}

	return accounts, nil
}

func scanBankAccount(row pgx.Row) (*domain.BankAccount, error) {
	var rawID, rawOwner, name, overdraft, currency, balance string

	if err := row.Scan(&rawID, &rawOwner, &name, &overdraft, &currency, &balance); err != nil {
		return nil, err
	}

	id, err := domain.NewAccountID(rawID)
	if err != nil {
		return nil, fmt.Errorf("stored bank account id: %w", err)
	}

	owner, err := domain.NewUserID(rawOwner)
	if err != nil {
		return nil, fmt.Errorf("stored owner id: %w", err)
	}

	overdraftValue, err := decimal.NewFromString(overdraft)
	if err != nil {
		return nil, fmt.Errorf("stored overdraft: %w", err)
	}

	balanceValue, err := decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("stored balance: %w", err)
	}

	return domain.NewBankAccount(id, owner, name, overdraftValue, domain.Currency(currency), balanceValue)
}
