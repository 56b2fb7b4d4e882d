package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reels_monetization/internal/money"
)

var errLockTimeout = errors.New("lock wait timeout exceeded")

func newMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return NewGormStore(db, "coins"), mock
}

func TestGormStoreGet(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT \\* FROM `wallets`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "ledger", "balance"}).AddRow(1, "7", "coins", 1250))

	acct, err := store.Get(context.Background(), "7")
	require.NoError(t, err)
	require.Equal(t, Account{UserID: "7", Balance: money.Amount(1250)}, acct)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreGetMissing(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT \\* FROM `wallets`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "ledger", "balance"}))

	_, err := store.Get(context.Background(), "7")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreInsertDuplicate(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO `wallets`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := store.Insert(context.Background(), Account{UserID: "7"})
	require.ErrorIs(t, err, ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStorePutIsOneTransaction(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `wallets` .* ON DUPLICATE KEY UPDATE").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `wallets` .* ON DUPLICATE KEY UPDATE").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := store.Put(context.Background(), Account{UserID: "a", Balance: 10}, Account{UserID: "b", Balance: 20})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStorePutRollsBack(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `wallets`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `wallets`").WillReturnError(errLockTimeout)
	mock.ExpectRollback()

	err := store.Put(context.Background(), Account{UserID: "a", Balance: 10}, Account{UserID: "b", Balance: 20})
	require.ErrorIs(t, err, errLockTimeout)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreDeleteMissing(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM `wallets`").WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, store.Delete(context.Background(), "7"), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerOverGormStore(t *testing.T) {
	store, mock := newMockStore(t)
	cols := []string{"id", "user_id", "ledger", "balance"}
	mock.ExpectQuery("SELECT \\* FROM `wallets`").WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "a", "coins", 100))
	l := New("coins", store)

	_, err := l.Debit(context.Background(), "a", 101)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.NoError(t, mock.ExpectationsWereMet(), "a rejected debit must not write")
}
