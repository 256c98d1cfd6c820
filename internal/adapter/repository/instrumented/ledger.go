package instrumented

import (
	"context"
	"time"

	"github.com/walletsavior/walletsavior/internal/domain"
	"github.com/walletsavior/walletsavior/internal/infrastructure/metrics"
	"github.com/walletsavior/walletsavior/internal/usecase"
)

// Ledger records Prometheus metrics around a usecase.TransactionLedger.
type Ledger struct {
	inner   usecase.TransactionLedger
	metrics *metrics.Metrics
}

// NewLedger wraps inner.
func NewLedger(inner usecase.TransactionLedger, m *metrics.Metrics) *Ledger {
	return &Ledger{inner: inner, metrics: m}
}

func (l *Ledger) Append(ctx context.Context, tx *domain.Transaction) error {
	err := l.observe("append", func() error {
		return l.inner.Append(ctx, tx)
	})
	if err == nil {
		l.recorded(tx)
	}
	return err
}

// AppendAll delegates to the inner ledger's batch support when present and
// appends one by one otherwise.
func (l *Ledger) AppendAll(ctx context.Context, txs []*domain.Transaction) error {
	err := l.observe("append_batch", func() error {
		if batch, ok := l.inner.(usecase.BatchAppender); ok {
			return batch.AppendAll(ctx, txs)
		}
		for _, tx := range txs {
			if err := l.inner.Append(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		for _, tx := range txs {
			l.recorded(tx)
		}
	}
	return err
}

func (l *Ledger) ListByAccount(ctx context.Context, accountID domain.AccountID, page *usecase.Page) ([]*domain.Transaction, error) {
	var txs []*domain.Transaction
	err := l.observe("list", func() error {
		var err error
		txs, err = l.inner.ListByAccount(ctx, accountID, page)
		return err
	})
	return txs, err
}

func (l *Ledger) FindByID(ctx context.Context, id domain.TransactionID) (*domain.Transaction, error) {
	var tx *domain.Transaction
	err := l.observe("find", func() error {
		var err error
		tx, err = l.inner.FindByID(ctx, id)
		return err
	})
	return tx, err
}

func (l *Ledger) Replace(ctx context.Context, tx *domain.Transaction) error {
	return l.observe("replace", func() error {
		return l.inner.Replace(ctx, tx)
	})
}

func (l *Ledger) observe(operation string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := "ok"
	if err != nil {
		status = "error"
	}

	l.metrics.LedgerOperations.WithLabelValues(operation, status).Inc()
	l.metrics.LedgerDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	return err
}

func (l *Ledger) recorded(tx *domain.Transaction) {
	txType := string(tx.Type())
	l.metrics.TransactionsRecorded.WithLabelValues(txType).Inc()
	l.metrics.TransactionAmount.WithLabelValues(txType).Observe(tx.Amount().InexactFloat64())
}
