package rewards

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"reels_monetization/internal/domain"
	"reels_monetization/internal/ledger"
	"reels_monetization/internal/money"
	"reels_monetization/internal/security"
)

// Wallets is a user's pair of accounts.
type Wallets struct {
	Coins money.Amount `json:"coins"`
	Cash  money.Amount `json:"cash"`
}

// OpenWallets creates the coin and cash accounts of userID, both empty.
// It fails with ledger.ErrAlreadyExists when either account is open.
func (s *Service) OpenWallets(ctx context.Context, userID string) error {
	if _, err := s.coins.CreateAccount(ctx, userID, 0); err != nil {
		return err
	}
	if _, err := s.cash.CreateAccount(ctx, userID, 0); err != nil {
		return err
	}
	return nil
}

// Balances returns both balances of userID.
func (s *Service) Balances(ctx context.Context, userID string) (Wallets, error) {
	coins, err := s.coins.BalanceOf(ctx, userID)
	if err != nil {
		return Wallets{}, err
	}
	cash, err := s.cash.BalanceOf(ctx, userID)
	if err != nil {
		return Wallets{}, err
	}
	return Wallets{Coins: coins, Cash: cash}, nil
}

// RewardedAd credits the rewarded-ad coins and returns the new balance.
func (s *Service) RewardedAd(ctx context.Context, userID string) (money.Amount, error) {
	amount := money.FromUnits(s.catalog.Engagement.RewardedAdCoins)
	bal, err := s.coins.Credit(ctx, userID, amount, "rewarded_ad")
	if err != nil {
		return 0, err
	}
	s.journal(ctx, s.coins, userID, "income", domain.CategoryAdRevenue, amount, "", "", "Rewarded ad")
	return bal, nil
}

// Purchase is the outcome of a coin purchase.
type Purchase struct {
	PackageID string       `json:"package_id"`
	Coins     money.Amount `json:"coins"`
	Charged   money.Amount `json:"charged"`
	Balance   money.Amount `json:"balance"`
}

// PurchaseCoins credits a coin package, bonus included, and records the
// charge at the discounted price.
func (s *Service) PurchaseCoins(ctx context.Context, userID, packageID, paymentMethod string) (Purchase, error) {
	if s.guard.Suspicious(userID, security.ActivityPurchase) {
		suspiciousActivity.WithLabelValues(security.ActivityPurchase).Inc()
		return Purchase{}, ErrSuspicious
	}
	total, ok := s.catalog.TotalCoins(packageID)
	if !ok {
		return Purchase{}, fmt.Errorf("coin package %q: %w", packageID, ErrUnknownItem)
	}
	price, _ := s.catalog.DiscountedPrice(packageID)
	charged := money.ToAmount(price)
	coins := money.FromUnits(total)

	bal, err := s.coins.Credit(ctx, userID, coins, "coin_purchase")
	if err != nil {
		return Purchase{}, err
	}
	s.rec.Record(ctx, domain.CollectionCoinPurchases, &domain.CoinPurchaseRecord{
		UserID:        userID,
		PackageID:     packageID,
		PaymentMethod: paymentMethod,
		Price:         int64(charged),
		Coins:         int64(coins),
	})
	s.journal(ctx, s.coins, userID, "income", domain.CategoryCoinPurchase, coins, "", "", "Coin package "+packageID)
	s.log.WithFields(logrus.Fields{
		"user_id":    userID,
		"package_id": packageID,
		"coins":      coins.String(),
		"charged":    charged.String(),
	}).Info("Coins purchased")
	return Purchase{PackageID: packageID, Coins: coins, Charged: charged, Balance: bal}, nil
}

// SendGift moves the price of qty gifts from sender to receiver, keeping the
// platform cut.
func (s *Service) SendGift(ctx context.Context, senderID, receiverID, giftID string, qty int) (ledger.Transfer, error) {
	if _, ok := s.catalog.Gift(giftID); !ok {
		return ledger.Transfer{}, fmt.Errorf("gift %q: %w", giftID, ErrUnknownItem)
	}
	cost, ok := s.catalog.GiftCost(giftID, qty)
	if !ok {
		return ledger.Transfer{}, fmt.Errorf("%d x %s: %w", qty, giftID, ErrInvalidQuantity)
	}
	if s.guard.Suspicious(senderID, security.ActivityGift) {
		suspiciousActivity.WithLabelValues(security.ActivityGift).Inc()
		return ledger.Transfer{}, ErrSuspicious
	}
	t, err := s.coins.TransferWithCut(ctx, senderID, receiverID, money.FromUnits(cost), ledger.GiftCut, ledger.KindGift)
	if err != nil {
		return ledger.Transfer{}, err
	}
	giftsSent.WithLabelValues(giftID).Add(float64(qty))

	id := t.ID.String()
	s.rec.Record(ctx, domain.CollectionGifts, &domain.GiftRecord{
		TransferID:     id,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		GiftID:         giftID,
		Quantity:       qty,
		Amount:         int64(t.Gross),
		ReceiverAmount: int64(t.Net),
	})
	s.journal(ctx, s.coins, senderID, "expense", domain.CategoryGiftSent, t.Gross, receiverID, id, fmt.Sprintf("%d x %s", qty, giftID))
	s.journal(ctx, s.coins, receiverID, "income", domain.CategoryGiftReceived, t.Net, senderID, id, fmt.Sprintf("%d x %s", qty, giftID))
	s.audit.Audit(ctx, senderID, security.EventGiftSent, map[string]any{
		"receiver_id": receiverID,
		"gift_id":     giftID,
		"quantity":    qty,
		"amount":      t.Gross.String(),
	})
	return t, nil
}

// AddBonus credits whole coins to userID on behalf of an administrator.
func (s *Service) AddBonus(ctx context.Context, userID string, coins int64, reason string) (money.Amount, error) {
	if coins <= 0 || coins > money.MaxUnits {
		return 0, ledger.ErrInvalidAmount
	}
	amount := money.FromUnits(coins)
	bal, err := s.coins.Credit(ctx, userID, amount, "bonus")
	if err != nil {
		return 0, err
	}
	s.journal(ctx, s.coins, userID, "income", domain.CategoryBonus, amount, "", "", reason)
	s.audit.Audit(ctx, userID, security.EventBonusGranted, map[string]any{
		"coins":  coins,
		"reason": reason,
	})
	return bal, nil
}

// Conversion is the outcome of cashing out coins.
type Conversion struct {
	Coins   money.Amount `json:"coins"`
	Cash    money.Amount `json:"cash"`
	Balance Wallets      `json:"balance"`
}

// ConvertCoins exchanges whole coins for cash at the catalog rate. The coin
// debit and cash credit happen under one lock of both accounts.
func (s *Service) ConvertCoins(ctx context.Context, userID string, coins int64) (Conversion, error) {
	cash, ok := s.catalog.ConversionCash(coins)
	if !ok {
		return Conversion{}, fmt.Errorf("convert %d coins: %w", coins, ErrInvalidConversion)
	}
	debit := money.FromUnits(coins)
	coinBal, cashBal, err := ledger.Exchange(ctx, s.coins, s.cash, userID, debit, cash)
	if err != nil {
		return Conversion{}, err
	}
	s.journal(ctx, s.coins, userID, "expense", domain.CategoryConversion, debit, "", "", "Converted to cash")
	s.journal(ctx, s.cash, userID, "income", domain.CategoryConversion, cash, "", "", "Converted from coins")
	s.audit.Audit(ctx, userID, security.EventCoinsConverted, map[string]any{
		"coins": debit.String(),
		"cash":  cash.String(),
	})
	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"coins":   debit.String(),
		"cash":    cash.String(),
	}).Info("Coins converted")
	return Conversion{Coins: debit, Cash: cash, Balance: Wallets{Coins: coinBal, Cash: cashBal}}, nil
}

// Withdraw debits cash for a bank payout. The payout itself is recorded as
// pending and settled outside this service.
func (s *Service) Withdraw(ctx context.Context, userID string, amount money.Amount, bankAccount string) (money.Amount, error) {
	if amount <= 0 {
		return 0, ledger.ErrInvalidAmount
	}
	if s.guard.Suspicious(userID, security.ActivityWithdrawal) {
		suspiciousActivity.WithLabelValues(security.ActivityWithdrawal).Inc()
		s.audit.Audit(ctx, userID, security.EventSuspiciousWithdrawal, map[string]any{
			"amount": amount.String(),
		})
		return 0, ErrSuspicious
	}
	bal, err := s.cash.Debit(ctx, userID, amount)
	if err != nil {
		return bal, err
	}
	s.rec.Record(ctx, domain.CollectionWithdrawals, &domain.WithdrawalRecord{
		UserID:      userID,
		Amount:      int64(amount),
		BankAccount: bankAccount,
		Status:      "pending",
	})
	s.journal(ctx, s.cash, userID, "expense", domain.CategoryWithdrawal, amount, "", "", "Bank withdrawal")
	s.audit.Audit(ctx, userID, security.EventWithdrawalRequested, map[string]any{
		"amount": amount.String(),
	})
	return bal, nil
}
