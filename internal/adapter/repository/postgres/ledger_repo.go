package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/walletsavior/walletsavior/internal/domain"
	"github.com/walletsavior/walletsavior/internal/usecase"
)

const (
	insertTransactionSQL = `
		INSERT INTO transactions (id, bank_account_id, name, category, type, amount, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	selectTransactionColumns = `SELECT id, bank_account_id, name, category, type, amount::text, date FROM transactions`

	listTransactionsSQL = selectTransactionColumns + `
		WHERE bank_account_id = $1
		ORDER BY date DESC, id COLLATE "C" ASC`

	listTransactionsPageSQL = listTransactionsSQL + `
		LIMIT $2 OFFSET $3`

	findTransactionSQL = selectTransactionColumns + `
		WHERE id = $1`

	replaceTransactionSQL = `
		UPDATE transactions
		SET bank_account_id = $2, name = $3, category = $4, type = $5, amount = $6, date = $7, updated_at = NOW()
		WHERE id = $1`
)

// LedgerRepository implements usecase.TransactionLedger and
// usecase.BatchAppender on PostgreSQL.
type LedgerRepository struct {
	db      dbtx
	retrier *Retrier
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool, retrier *Retrier) *LedgerRepository {
	return newLedgerWithPool(pool, retrier)
}

func newLedgerWithPool(db dbtx, retrier *Retrier) *LedgerRepository {
	return &LedgerRepository{db: db, retrier: retrier}
}

// Append inserts a transaction. A duplicate id fails with a StorageError.
func (r *LedgerRepository) Append(ctx context.Context, tx *domain.Transaction) error {
	err := r.retrier.Retry(ctx, func() error {
		_, err := r.db.Exec(ctx, insertTransactionSQL, transactionArgs(tx)...)
		return err
	})
	return storageError("append", err)
}

// AppendAll inserts every transaction in a single database transaction.
func (r *LedgerRepository) AppendAll(ctx context.Context, txs []*domain.Transaction) error {
	err := r.retrier.Retry(ctx, func() error {
		return inTx(ctx, r.db, func(tx pgx.Tx) error {
			for _, t := range txs {
				if _, err := tx.Exec(ctx, insertTransactionSQL, transactionArgs(t)...); err != nil {
					return err
				}
			}
			return nil
		})
	})
	return storageError("append batch", err)
}

// ListByAccount returns the account's transactions newest first. A nil page
// returns all of them.
func (r *LedgerRepository) ListByAccount(ctx context.Context, accountID domain.AccountID, page *usecase.Page) ([]*domain.Transaction, error) {
	var (
		rows pgx.Rows
		err  error
	)

	if page == nil {
		rows, err = r.db.Query(ctx, listTransactionsSQL, accountID.String())
	} else {
		p := page.Normalize()
		rows, err = r.db.Query(ctx, listTransactionsPageSQL, accountID.String(), p.Limit, p.Offset)
	}
	if err != nil {
		return nil, storageError("list transactions", err)
	}
	defer rows.Close()

	txs := make([]*domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, storageError("list transactions", err)
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("list transactions", err)
	}

	return txs, nil
}

// FindByID returns (nil, nil) when the id is unknown.
func (r *LedgerRepository) FindByID(ctx context.Context, id domain.TransactionID) (*domain.Transaction, error) {
	tx, err := scanTransaction(r.db.QueryRow(ctx, findTransactionSQL, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("find transaction", err)
	}
	return tx, nil
}

// Replace updates the stored transaction with the same id.
func (r *LedgerRepository) Replace(ctx context.Context, tx *domain.Transaction) error {
	var affected int64

	err := r.retrier.Retry(ctx, func() error {
		tag, err := r.db.Exec(ctx, replaceTransactionSQL, transactionArgs(tx)...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return storageError("replace", err)
	}

	if affected == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

func transactionArgs(tx *domain.Transaction) []any {
	return []any{
		tx.ID().String(),
		tx.BankAccountID().String(),
		tx.Name(),
		tx.Category(),
		string(tx.Type()),
		decimalToNumeric(tx.Amount()),
		tx.Date(),
	}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		rawID, rawAccountID, name, category, txType, amount string
		date                                                time.Time
	)

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

	return domain.RestoreTransaction(id, accountID, name, category, domain.TransactionType(txType), value, date), nil
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return domain.NewStorageError(op, fmt.Errorf("duplicate id: %w", err))
	}
	return domain.NewStorageError(op, err)
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}
