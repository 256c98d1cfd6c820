package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletsavior/walletsavior/internal/domain"
	"github.com/walletsavior/walletsavior/internal/usecase"
)

// dateLayout is fixed width so that text ordering matches time ordering.
const dateLayout = "2006-01-02T15:04:05.000000000Z"

const (
	insertTransactionSQL = `
		INSERT INTO transactions (id, bank_account_id, name, category, type, amount, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	selectTransactionColumns = `SELECT id, bank_account_id, name, category, type, amount, date FROM transactions`

	listTransactionsSQL = selectTransactionColumns + `
		WHERE bank_account_id = ?
		ORDER BY date DESC, id ASC`

	listTransactionsPageSQL = listTransactionsSQL + `
		LIMIT ? OFFSET ?`

	findTransactionSQL = selectTransactionColumns + `
		WHERE id = ?`

	replaceTransactionSQL = `
		UPDATE transactions
		SET bank_account_id = ?, name = ?, category = ?, type = ?, amount = ?, date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
)

// LedgerRepository implements usecase.TransactionLedger and
// usecase.BatchAppender on SQLite.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Append(ctx context.Context, tx *domain.Transaction) error {
	_, err := r.db.ExecContext(ctx, insertTransactionSQL, insertArgs(tx)...)
	return domain.NewStorageError("append", err)
}

// AppendAll inserts every transaction in a single database transaction.
func (r *LedgerRepository) AppendAll(ctx context.Context, txs []*domain.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("append batch", err)
	}

	for _, tx := range txs {
		if _, err := dbTx.ExecContext(ctx, insertTransactionSQL, insertArgs(tx)...); err != nil {
			_ = dbTx.Rollback()
			return domain.NewStorageError("append batch", err)
		}
	}

	return domain.NewStorageError("append batch", dbTx.Commit())
}

// ListByAccount returns the account's transactions newest first. A nil page
// returns all of them.
func (r *LedgerRepository) ListByAccount(ctx context.Context, accountID domain.AccountID, page *usecase.Page) ([]*domain.Transaction, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if page == nil {
		rows, err = r.db.QueryContext(ctx, listTransactionsSQL, accountID.String())
	} else {
		p := page.Normalize()
		rows, err = r.db.QueryContext(ctx, listTransactionsPageSQL, accountID.String(), p.Limit, p.Offset)
	}
	if err != nil {
		return nil, domain.NewStorageError("list transactions", err)
	}
	defer rows.Close()

	txs := make([]*domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, domain.NewStorageError("list transactions", err)
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list transactions", err)
	}

	return txs, nil
}

// FindByID returns (nil, nil) when the id is unknown.
func (r *LedgerRepository) FindByID(ctx context.Context, id domain.TransactionID) (*domain.Transaction, error) {
	tx, err := scanTransaction(r.db.QueryRowContext(ctx, findTransactionSQL, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError("find transaction", err)
	}
	return tx, nil
}

func (r *LedgerRepository) Replace(ctx context.Context, tx *domain.Transaction) error {
	res, err := r.db.ExecContext(ctx, replaceTransactionSQL,
		tx.BankAccountID().String(),
		tx.Name(),
		tx.Category(),
		string(tx.Type()),
		tx.Amount().String(),
		formatDate(tx.Date()),
		tx.ID().String(),
	)
	if err != nil {
		return domain.NewStorageError("replace", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.NewStorageError("replace", err)
	}

	if affected == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*domain.Transaction, error) {
	var rawID, rawAccountID, name, category, txType, amount, date string

	if err := row.Scan(&rawID, &rawAccountID, &name, &category, &txType, &amount, &date); err != nil {
		return nil, err
	}

	id, err := domain.NewTransactionID(rawID)
	if err != nil {
		return nil, fmt.Errorf("stored transaction id: %w", err)
	}

	accountID, err := domain.NewAccountID(rawAccountID)
	if err != nil {
		return nil, fmt.Errorf("stored bank account id: %w", err)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("stored amount: %w", err)
	}

	when, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("stored date: %w", err)
	}

	return domain.RestoreTransaction(id, accountID, name, category, domain.TransactionType(txType), value, when), nil
}

func insertArgs(tx *domain.Transaction) []any {
	return []any{
		tx.ID().String(),
		tx.BankAccountID().String(),
		tx.Name(),
		tx.Category(),
		string(tx.Type()),
		tx.Amount().String(),
		formatDate(tx.Date()),
	}
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
