package dbx

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE usuarios (id INTEGER PRIMARY KEY, usuario TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	return db
}

func usuarios(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM usuarios`).Scan(&n))
	return n
}

func insert(ctx context.Context, tx DBTX, usuario string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO usuarios (usuario) VALUES (?)`, usuario)
	return err
}

func TestWithTx_SQLite(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		db := openSQLite(t)
		err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			if err := insert(ctx, tx, "ana"); err != nil {
				return err
			}
			return insert(ctx, tx, "luis")
		})
		require.NoError(t, err)
		assert.Equal(t, 2, usuarios(t, db))
	})

	t.Run("failed insert rolls back earlier ones", func(t *testing.T) {
		db := openSQLite(t)
		err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, insert(ctx, tx, "ana"))
			return insert(ctx, tx, "ana")
		})
		require.Error(t, err)
		assert.Equal(t, 0, usuarios(t, db))
	})

	t.Run("panic rolls back and propagates", func(t *testing.T) {
		db := openSQLite(t)
		assert.PanicsWithValue(t, "kaput", func() {
			_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
				require.NoError(t, insert(ctx, tx, "ana"))
				panic("kaput")
			})
		})
		assert.Equal(t, 0, usuarios(t, db))
	})

	t.Run("closed db", func(t *testing.T) {
		db := openSQLite(t)
		require.NoError(t, db.Close())
		called := false
		err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
			called = true
			return nil
		})
		assert.ErrorContains(t, err, "begin tx")
		assert.False(t, called)
	})
}

func TestWithTx_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err = WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { return nil })
	assert.EqualError(t, err, "commit: serialization failure")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackErrorIsJoined(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fnErr := errors.New("duplicate key")
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection reset"))

	err = WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { return fnErr })
	assert.ErrorIs(t, err, fnErr)
	assert.ErrorContains(t, err, "rollback: connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}
