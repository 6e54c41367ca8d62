package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestTxManager_WithTx_Commit(t *testing.T) {
	sqlxDB, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	called := false
	err := NewTxManager(sqlxDB).WithTx(context.Background(), func(ctx context.Context) error {
		called = true
		assert.NotNil(t, GetTxFromContext(ctx))
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_WithTx_ErrorRollsBack(t *testing.T) {
	sqlxDB, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := errors.New("insert failed")
	err := NewTxManager(sqlxDB).WithTx(context.Background(), func(context.Context) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_WithTx_BeginError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")

	// Close db so Begin fails
	db.Close()

	err = NewTxManager(sqlxDB).WithTx(context.Background(), func(context.Context) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.Error(t, err)
}

func TestTxManager_WithTx_CommitError(t *testing.T) {
	sqlxDB, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	err := NewTxManager(sqlxDB).WithTx(context.Background(), func(context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_WithTx_Panic(t *testing.T) {
	sqlxDB, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = NewTxManager(sqlxDB).WithTx(context.Background(), func(context.Context) error {
			panic("test panic")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTxFromContext_Missing(t *testing.T) {
	assert.Nil(t, GetTxFromContext(context.Background()))
}
