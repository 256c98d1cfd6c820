package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/walletsavior/walletsavior/internal/domain"
	"github.com/walletsavior/walletsavior/internal/usecase"
)

// Ledger is an in-process TransactionLedger. Stored transactions are copies,
// so callers cannot mutate ledger state through returned values.
type Ledger struct {
	mu   sync.RWMutex
	byID map[domain.TransactionID]*domain.Transaction
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{byID: make(map[domain.TransactionID]*domain.Transaction)}
}

// Append stores tx. An existing id fails with a StorageError.
func (l *Ledger) Append(ctx context.Context, tx *domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStorageError("append", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byID[tx.ID()]; ok {
		return domain.NewStorageError("append", fmt.Errorf("transaction %s already exists", tx.ID()))
	}

	l.byID[tx.ID()] = tx.Clone()
	return nil
}

// AppendAll stores every transaction or none of them.
func (l *Ledger) AppendAll(ctx context.Context, txs []*domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStorageError("append batch", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[domain.TransactionID]bool, len(txs))
	for _, tx := range txs {
		if _, ok := l.byID[tx.ID()]; ok || seen[tx.ID()] {
			return domain.NewStorageError("append batch", fmt.Errorf("transaction %s already exists", tx.ID()))
		}
		seen[tx.ID()] = true
	}

	for _, tx := range txs {
		l.byID[tx.ID()] = tx.Clone()
	}
	return nil
}

// ListByAccount returns the account's transactions newest first, ties broken
// by id. A nil page returns all of them.
func (l *Ledger) ListByAccount(ctx context.Context, accountID domain.AccountID, page *usecase.Page) ([]*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewStorageError("list transactions", err)
	}

	l.mu.RLock()
	result := make([]*domain.Transaction, 0)
	for _, tx := range l.byID {
		if tx.BankAccountID().Equal(accountID) {
			result = append(result, tx.Clone())
		}
	}
	l.mu.RUnlock()

	SortTransactions(result)

	if page == nil {
		return result, nil
	}

	p := page.Normalize()
	if p.Offset >= len(result) {
		return []*domain.Transaction{}, nil
	}

	end := p.Offset + p.Limit
	if end > len(result) {
		end = len(result)
	}

	return result[p.Offset:end], nil
}

// FindByID returns (nil, nil) when id is unknown.
func (l *Ledger) FindByID(ctx context.Context, id domain.TransactionID) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewStorageError("find transaction", err)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	tx, ok := l.byID[id]
	if !ok {
		return nil, nil
	}
	return tx.Clone(), nil
}

// Replace overwrites the stored transaction with the same id.
func (l *Ledger) Replace(ctx context.Context, tx *domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStorageError("replace", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byID[tx.ID()]; !ok {
		return domain.ErrTransactionNotFound
	}

	l.byID[tx.ID()] = tx.Clone()
	return nil
}

// SortTransactions orders txs most-recent-first by date, ties broken by id
// ascending.
func SortTransactions(txs []*domain.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		di, dj := txs[i].Date(), txs[j].Date()
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return txs[i].ID().String() < txs[j].ID().String()
	})
}
