package record

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reels_monetization/internal/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormSinkWritesToCollectionTable(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO `gifts`").WillReturnResult(sqlmock.NewResult(1, 1))

	sink := NewGormSink(db)
	doc := &domain.GiftRecord{SenderID: "1", ReceiverID: "2", GiftID: "rose", Quantity: 1, Amount: 100, ReceiverAmount: 70}
	require.NoError(t, sink.Record(context.Background(), domain.CollectionGifts, doc))
	require.Equal(t, uint(1), doc.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSinkWrapsErrors(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("connection reset")
	mock.ExpectExec("INSERT INTO `withdrawals`").WillReturnError(boom)

	err := NewGormSink(db).Record(context.Background(), domain.CollectionWithdrawals, &domain.WithdrawalRecord{UserID: "1", Amount: 500})
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "withdrawals")
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	ctx := context.Background()
	require.NoError(t, sink.Record(ctx, "a", 1))
	require.NoError(t, sink.Record(ctx, "b", 2))
	require.NoError(t, sink.Record(ctx, "a", 3))
	require.Equal(t, []any{1, 3}, sink.Entries("a"))
	require.Empty(t, sink.Entries("c"))

	boom := errors.New("down")
	sink.FailWith(boom)
	require.ErrorIs(t, sink.Record(ctx, "a", 4), boom)
	sink.FailWith(nil)
	require.NoError(t, sink.Record(ctx, "a", 5))
	require.Equal(t, []any{1, 3, 5}, sink.Entries("a"))
}

func TestRecorderSwallowsAndLogs(t *testing.T) {
	log, hook := test.NewNullLogger()
	sink := NewMemorySink()
	rec := NewRecorder(sink, log)

	require.True(t, rec.Record(context.Background(), "gifts", "ok"))
	require.Empty(t, hook.AllEntries())

	sink.FailWith(errors.New("disk full"))
	require.False(t, rec.Record(context.Background(), "gifts", "lost"))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.ErrorLevel, entry.Level)
	require.Equal(t, "gifts", entry.Data["collection"])
	require.Len(t, sink.Entries("gifts"), 1)
}
