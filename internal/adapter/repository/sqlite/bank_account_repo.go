package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/walletsavior/walletsavior/internal/domain"
)

const (
	insertBankAccountSQL = `
		INSERT INTO bank_accounts (id, owner_id, name, overdraft, currency, balance)
		VALUES (?, ?, ?, ?, ?, ?)`

	selectBankAccountColumns = `SELECT id, owner_id, name, overdraft, currency, balance FROM bank_accounts`
)

// BankAccountRepository implements usecase.BankAccountRepository on SQLite.
type BankAccountRepository struct {
	db *sql.DB
}

// NewBankAccountRepository creates a new BankAccountRepository.
func NewBankAccountRepository(db *sql.DB) *BankAccountRepository {
	return &BankAccountRepository{db: db}
}

func (r *BankAccountRepository) Create(ctx context.Context, account *domain.BankAccount) error {
	_, err := r.db.ExecContext(ctx, insertBankAccountSQL,
		account.ID().String(),
		account.OwnerID().String(),
		account.Name(),
		account.Overdraft().String(),
		string(account.Currency()),
		account.Balance().String(),
	)
	return domain.NewStorageError("create bank account", err)
}

func (r *BankAccountRepository) GetByID(ctx context.Context, id domain.AccountID) (*domain.BankAccount, error) {
	row := r.db.QueryRowContext(ctx, selectBankAccountColumns+` WHERE id = ?`, id.String())

	account, err := scanBankAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBankAccountNotFound
		}
		return nil, domain.NewStorageError("get bank account", err)
	}
	return account, nil
}

func (r *BankAccountRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.BankAccount, error) {
	rows, err := r.db.QueryContext(ctx, selectBankAccountColumns+` WHERE owner_id = ? ORDER BY name, id`, owner.String())
	if err != nil {
		return nil, domain.NewStorageError("list bank accounts", err)
	}
	defer rows.Close()

	accounts := make([]*domain.BankAccount, 0)
	for rows.Next() {
		account, err := scanBankAccount(rows)
		if err != nil {
			return nil, domain.NewStorageError("list bank accounts", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list bank accounts", err)
	}

	return accounts, nil
}

func scanBankAccount(row scanner) (*domain.BankAccount, error) {
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
