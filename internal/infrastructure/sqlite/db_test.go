package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wallet.db")

	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path), "second run must be a no-op")

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('transactions', 'bank_accounts')`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	require.NoError(t, RunMigrationsDown(path))

	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'transactions'`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
