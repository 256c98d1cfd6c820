package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.TransactionsRecorded == nil || m.HTTPRequests == nil || m.LedgerOperations == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.TransactionsRecorded.WithLabelValues("INCOME").Inc()
	m.BankAccountsCreated.Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.TransactionsRecorded.WithLabelValues("INCOME")); got != 1 {
		t.Fatalf("expected 1 income transaction, got %v", got)
	}
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	New(registry)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected duplicate registration to panic")
		}
	}()

	New(registry)
}
