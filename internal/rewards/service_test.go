package rewards

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"reels_monetization/internal/catalog"
	"reels_monetization/internal/domain"
	"reels_monetization/internal/ledger"
	"reels_monetization/internal/money"
	"reels_monetization/internal/progress"
	"reels_monetization/internal/record"
	"reels_monetization/internal/security"
)

type fixture struct {
	svc  *Service
	sink *record.MemorySink
}

func newFixture(t *testing.T, limits map[string]security.Limit) fixture {
	t.Helper()
	log, _ := test.NewNullLogger()
	cat := catalog.Default()
	sink := record.NewMemorySink()
	svc := New(Deps{
		Catalog:  cat,
		Coins:    ledger.New(LedgerCoins, ledger.NewMemoryStore()),
		Cash:     ledger.New(LedgerCash, ledger.NewMemoryStore()),
		Progress: progress.NewEngine(progress.NewMemoryStore(), cat.Badges),
		Recorder: record.NewRecorder(sink, log),
		Guard:    security.NewGuard(limits),
		Log:      log,
	})
	return fixture{svc: svc, sink: sink}
}

func coins(n int64) money.Amount { return money.FromUnits(n) }

func TestOpenWallets(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.svc.OpenWallets(ctx, "u1"))
	require.ErrorIs(t, f.svc.OpenWallets(ctx, "u1"), ledger.ErrAlreadyExists)

	w, err := f.svc.Balances(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, Wallets{}, w)
}

func TestRewardedAd(t *testing.T) {
	f := newFixture(t, nil)
	bal, err := f.svc.RewardedAd(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, coins(50), bal)

	lines := f.sink.Entries(domain.CollectionTransactions)
	require.Len(t, lines, 1)
	tx := lines[0].(*domain.Transaction)
	require.Equal(t, domain.CategoryAdRevenue, tx.Category)
	require.Equal(t, "coins", tx.Ledger)
}

func TestPurchaseCoins(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	p, err := f.svc.PurchaseCoins(ctx, "u1", "popular", "card")
	require.NoError(t, err)
	require.Equal(t, coins(550), p.Coins)
	require.Equal(t, money.Amount(449), p.Charged)
	require.Equal(t, coins(550), p.Balance)

	docs := f.sink.Entries(domain.CollectionCoinPurchases)
	require.Len(t, docs, 1)
	require.Equal(t, int64(449), docs[0].(*domain.CoinPurchaseRecord).Price)

	_, err = f.svc.PurchaseCoins(ctx, "u1", "gigantic", "card")
	require.ErrorIs(t, err, ErrUnknownItem)
}

func TestSendGift(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.svc.Coins().Credit(ctx, "alice", coins(150), "test")
	require.NoError(t, err)

	tr, err := f.svc.SendGift(ctx, "alice", "bob", "crown", 2)
	require.NoError(t, err)
	require.Equal(t, coins(100), tr.Gross)
	require.Equal(t, coins(70), tr.Net)
	require.Equal(t, coins(30), tr.Cut)

	w, err := f.svc.Balances(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, coins(50), w.Coins)
	w, err = f.svc.Balances(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, coins(70), w.Coins)

	require.Len(t, f.sink.Entries(domain.CollectionGifts), 1)
	require.Len(t, f.sink.Entries(domain.CollectionTransactions), 2)
	require.Len(t, f.sink.Entries(domain.CollectionSecurityAuditLog), 1)
}

func TestSendGiftFailures(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.svc.Coins().Credit(ctx, "alice", coins(10), "test")
	require.NoError(t, err)

	_, err = f.svc.SendGift(ctx, "alice", "bob", "rocket", 1)
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	_, err = f.svc.SendGift(ctx, "alice", "bob", "unicorn", 1)
	require.ErrorIs(t, err, ErrUnknownItem)
	_, err = f.svc.SendGift(ctx, "alice", "bob", "rose", 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = f.svc.SendGift(ctx, "alice", "alice", "rose", 1)
	require.ErrorIs(t, err, ledger.ErrSameAccount)
	// a cost that would wrap around int64 is refused before any movement
	_, err = f.svc.SendGift(ctx, "alice", "bob", "rocket", 184467440737095517)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = f.svc.SendGift(ctx, "alice", "bob", "rocket", int(money.MaxUnits/100)+1)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	bal, err := f.svc.Coins().BalanceOf(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, coins(10), bal)
	require.Empty(t, f.sink.Entries(domain.CollectionGifts))
}

func TestGiftSucceedsWhenRecordingFails(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.svc.Coins().Credit(ctx, "alice", coins(5), "test")
	require.NoError(t, err)
	f.sink.FailWith(context.DeadlineExceeded)

	_, err = f.svc.SendGift(ctx, "alice", "bob", "heart", 1)
	require.NoError(t, err)
	bal, err := f.svc.Coins().BalanceOf(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, money.Amount(350), bal)
}

func TestAddBonus(t *testing.T) {
	f := newFixture(t, nil)
	bal, err := f.svc.AddBonus(context.Background(), "u1", 25, "contest winner")
	require.NoError(t, err)
	require.Equal(t, coins(25), bal)

	_, err = f.svc.AddBonus(context.Background(), "u1", 0, "nothing")
	require.ErrorIs(t, err, ledger.ErrInvalidAmount)
	_, err = f.svc.AddBonus(context.Background(), "u1", money.MaxUnits+1, "too much")
	require.ErrorIs(t, err, ledger.ErrInvalidAmount)

	// the ledger refuses a bonus that would overflow the balance
	_, err = f.svc.AddBonus(context.Background(), "u1", money.MaxUnits, "jackpot")
	require.ErrorIs(t, err, ledger.ErrInvalidAmount)
	bal, err = f.svc.Coins().BalanceOf(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, coins(25), bal)
}

func TestWithdraw(t *testing.T) {
	f := newFixture(t, map[string]security.Limit{security.ActivityWithdrawal: {PerHour: 2, Burst: 2}})
	ctx := context.Background()
	_, err := f.svc.Cash().Credit(ctx, "u1", 1000, "test")
	require.NoError(t, err)

	bal, err := f.svc.Withdraw(ctx, "u1", 400, "DE89")
	require.NoError(t, err)
	require.Equal(t, money.Amount(600), bal)

	bal, err = f.svc.Withdraw(ctx, "u1", 700, "DE89")
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	require.Equal(t, money.Amount(600), bal)

	_, err = f.svc.Withdraw(ctx, "u1", 100, "DE89")
	require.ErrorIs(t, err, ErrSuspicious)

	w := f.sink.Entries(domain.CollectionWithdrawals)
	require.Len(t, w, 1)
	require.Equal(t, "pending", w[0].(*domain.WithdrawalRecord).Status)

	var events []string
	for _, d := range f.sink.Entries(domain.CollectionSecurityAuditLog) {
		events = append(events, d.(*domain.SecurityEvent).EventType)
	}
	require.Equal(t, []string{security.EventWithdrawalRequested, security.EventSuspiciousWithdrawal}, events)

	_, err = f.svc.Withdraw(ctx, "u2", -1, "DE89")
	require.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestConvertCoins(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.svc.Coins().Credit(ctx, "creator", coins(70), "test")
	require.NoError(t, err)

	_, err = f.svc.ConvertCoins(ctx, "creator", 100)
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	_, err = f.svc.ConvertCoins(ctx, "creator", 30)
	require.ErrorIs(t, err, ErrInvalidConversion)

	_, err = f.svc.Coins().Credit(ctx, "creator", coins(130), "test")
	require.NoError(t, err)
	conv, err := f.svc.ConvertCoins(ctx, "creator", 200)
	require.NoError(t, err)
	require.Equal(t, coins(200), conv.Coins)
	require.Equal(t, money.Amount(100), conv.Cash)
	require.Equal(t, Wallets{Coins: 0, Cash: 100}, conv.Balance)

	// gift earnings can be cashed out and withdrawn
	bal, err := f.svc.Withdraw(ctx, "creator", 100, "DE89")
	require.NoError(t, err)
	require.Zero(t, bal)

	lines := f.sink.Entries(domain.CollectionTransactions)
	require.Len(t, lines, 3)
	require.Equal(t, domain.CategoryConversion, lines[0].(*domain.Transaction).Category)
	require.Equal(t, "cash", lines[1].(*domain.Transaction).Ledger)
}

func TestSponsoredContent(t *testing.T) {
	f := newFixture(t, nil)
	tr, err := f.svc.SponsoredContent(context.Background(), "creator", "brand-7", 10000)
	require.NoError(t, err)
	require.Equal(t, money.Amount(8000), tr.Net)
	require.Equal(t, money.Amount(2000), tr.Cut)

	bal, err := f.svc.Cash().BalanceOf(context.Background(), "creator")
	require.NoError(t, err)
	require.Equal(t, money.Amount(8000), bal)

	_, err = f.svc.SponsoredContent(context.Background(), "creator", "brand-7", -5)
	require.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestRecordReferral(t *testing.T) {
	f := newFixture(t, nil)
	r, err := f.svc.RecordReferral(context.Background(), "ref", "new")
	require.NoError(t, err)
	require.Equal(t, coins(500), r.ReferrerBalance)
	require.Equal(t, coins(250), r.ReferredBalance)
	require.Len(t, f.sink.Entries(domain.CollectionReferrals), 1)

	_, err = f.svc.RecordReferral(context.Background(), "ref", "ref")
	require.ErrorIs(t, err, ledger.ErrSameAccount)
}

func TestSubscribe(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return start }
	_, err := f.svc.Cash().Credit(ctx, "fan", coins(20), "test")
	require.NoError(t, err)

	sub, err := f.svc.Subscribe(ctx, "fan", "gold", "ref")
	require.NoError(t, err)
	require.Equal(t, int64(999), sub.Price)
	require.Equal(t, start.Add(SubscriptionPeriod).UnixMilli(), sub.RenewalDate)

	w, err := f.svc.Balances(ctx, "fan")
	require.NoError(t, err)
	require.Equal(t, money.Amount(1001), w.Cash, "charged 9.99")
	bal, err := f.svc.Cash().BalanceOf(ctx, "ref")
	require.NoError(t, err)
	require.Equal(t, money.Amount(100), bal, "10% of 9.99, rounded half to even")

	active, ok := f.svc.Subscription("fan")
	require.True(t, ok)
	require.Equal(t, "gold", active.Tier)

	_, err = f.svc.Subscribe(ctx, "fan", "bronze", "")
	require.ErrorIs(t, err, ErrUnknownItem)
}

func TestSubscribeTwiceIsRejected(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	clock := start
	f.svc.now = func() time.Time { return clock }
	_, err := f.svc.Cash().Credit(ctx, "sub", coins(100), "test")
	require.NoError(t, err)

	_, err = f.svc.Subscribe(ctx, "sub", "diamond", "ref")
	require.NoError(t, err)
	paid, err := f.svc.Cash().BalanceOf(ctx, "ref")
	require.NoError(t, err)

	for range 10 {
		_, err = f.svc.Subscribe(ctx, "sub", "diamond", "ref")
		require.ErrorIs(t, err, ErrAlreadySubscribed)
	}
	bal, err := f.svc.Cash().BalanceOf(ctx, "ref")
	require.NoError(t, err)
	require.Equal(t, paid, bal, "a refused subscription pays no commission")
	bal, err = f.svc.Cash().BalanceOf(ctx, "sub")
	require.NoError(t, err)
	require.Equal(t, coins(100)-money.Amount(1999), bal)
	require.Len(t, f.sink.Entries(domain.CollectionSubscriptions), 1)

	// renewal is allowed once the period has run out
	clock = start.Add(SubscriptionPeriod)
	_, ok := f.svc.Subscription("sub")
	require.False(t, ok)
	_, err = f.svc.Subscribe(ctx, "sub", "silver", "")
	require.NoError(t, err)
	require.Len(t, f.sink.Entries(domain.CollectionSubscriptions), 2)
}

func TestSubscribeRequiresFunds(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Subscribe(ctx, "broke", "silver", "ref")
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	_, err = f.svc.Subscribe(ctx, "broke", "silver", "")
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	bal, err := f.svc.Cash().BalanceOf(ctx, "ref")
	require.NoError(t, err)
	require.Zero(t, bal)
	_, ok := f.svc.Subscription("broke")
	require.False(t, ok)
	require.Empty(t, f.sink.Entries(domain.CollectionSubscriptions))
}

func TestReferralEarnings(t *testing.T) {
	got, err := ReferralEarnings(3, 2000, 500, money.Percent(10))
	require.NoError(t, err)
	require.Equal(t, money.Amount(1700), got)

	f := newFixture(t, nil)
	got, err = f.svc.ReferralEarnings(2, 0)
	require.NoError(t, err)
	require.Equal(t, money.Amount(1000), got)

	_, err = ReferralEarnings(-1, 0, 500, money.Percent(10))
	require.ErrorIs(t, err, money.ErrInvalidAmount)
	_, err = ReferralEarnings(1, 0, 500, money.Rate(20000))
	require.ErrorIs(t, err, money.ErrInvalidRate)
}

func TestCreatorEarnings(t *testing.T) {
	got := CreatorEarnings(10000, 500, 100, decimal.NewFromInt(1))
	require.True(t, got.Equal(decimal.RequireFromString("20")), "got %s", got)

	f := newFixture(t, nil)
	got, err := f.svc.CreatorEarnings(10000, 500, 100, "pro")
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.RequireFromString("30")), "got %s", got)

	_, err = f.svc.CreatorEarnings(1, 1, 1, "enterprise")
	require.ErrorIs(t, err, ErrUnknownItem)
}
