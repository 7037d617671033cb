package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openMigrated(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "lndash.db")
	require.NoError(t, RunMigrations(dbPath))
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestWithTxCommits(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()

	require.NoError(t, WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO addresses (id, address, addr_type) VALUES ('a1', 'bc1qcommitted', 'p2wkh')`)
		return err
	}))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM addresses`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		_, execErr := tx.ExecContext(ctx, `INSERT INTO addresses (id, address, addr_type) VALUES ('a1', 'bc1qdoomed', 'p2wkh')`)
		require.NoError(t, execErr)
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM addresses`).Scan(&n))
	require.Equal(t, 0, n)
}
