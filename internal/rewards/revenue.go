package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"reels_monetization/internal/domain"
	"reels_monetization/internal/ledger"
	"reels_monetization/internal/money"
)

// SubscriptionPeriod is the renewal interval of a tier.
const SubscriptionPeriod = 30 * 24 * time.Hour

// SponsoredContent credits a brand payment to the creator's cash account
// minus the platform cut.
func (s *Service) SponsoredContent(ctx context.Context, creatorID, brandID string, amount money.Amount) (ledger.Transfer, error) {
	t, err := s.cash.CreditWithCut(ctx, creatorID, amount, ledger.SponsoredCut, ledger.KindSponsored)
	if err != nil {
		return ledger.Transfer{}, err
	}
	id := t.ID.String()
	s.rec.Record(ctx, domain.CollectionSponsoredContent, &domain.SponsoredRecord{
		TransferID:      id,
		CreatorID:       creatorID,
		BrandID:         brandID,
		Amount:          int64(t.Gross),
		CreatorEarnings: int64(t.Net),
	})
	s.journal(ctx, s.cash, creatorID, "income", domain.CategorySponsored, t.Net, brandID, id, "Sponsored content")
	return t, nil
}

// Referral is the outcome of a recorded referral.
type Referral struct {
	ReferrerBalance money.Amount `json:"referrer_balance"`
	ReferredBalance money.Amount `json:"referred_balance"`
}

// RecordReferral pays the sign-up coin bonuses to both users.
func (s *Service) RecordReferral(ctx context.Context, referrerID, referredID string) (Referral, error) {
	if referrerID == referredID {
		return Referral{}, ledger.ErrSameAccount
	}
	rc := s.catalog.Referral
	referrerBonus := money.FromUnits(rc.ReferrerCoins)
	referredBonus := money.FromUnits(rc.ReferredCoins)

	rb, err := s.coins.Credit(ctx, referrerID, referrerBonus, "referral")
	if err != nil {
		return Referral{}, err
	}
	nb, err := s.coins.Credit(ctx, referredID, referredBonus, "referral")
	if err != nil {
		return Referral{}, err
	}
	s.rec.Record(ctx, domain.CollectionReferrals, &domain.ReferralRecord{
		ReferrerID:    referrerID,
		NewUserID:     referredID,
		ReferrerBonus: int64(referrerBonus),
		ReferredBonus: int64(referredBonus),
	})
	s.journal(ctx, s.coins, referrerID, "income", domain.CategoryReferral, referrerBonus, referredID, "", "Referral bonus")
	s.journal(ctx, s.coins, referredID, "income", domain.CategoryReferral, referredBonus, referrerID, "", "Welcome bonus")
	return Referral{ReferrerBalance: rb, ReferredBalance: nb}, nil
}

// Subscribe charges the tier price to userID's cash account and activates
// the tier until the renewal date. A user with an active subscription is
// refused with ErrAlreadySubscribed. When referrerID is set, the payment is
// moved to the referrer minus the platform share, so the referrer keeps the
// commission.
func (s *Service) Subscribe(ctx context.Context, userID, tierID, referrerID string) (domain.SubscriptionRecord, error) {
	tier, ok := s.catalog.Tier(tierID)
	if !ok {
		return domain.SubscriptionRecord{}, fmt.Errorf("tier %q: %w", tierID, ErrUnknownItem)
	}
	if referrerID == userID {
		referrerID = ""
	}

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	now := s.now()
	if cur, ok := s.subs[userID]; ok && now.UnixMilli() < cur.RenewalDate {
		return domain.SubscriptionRecord{}, fmt.Errorf("%s until %d: %w", cur.Tier, cur.RenewalDate, ErrAlreadySubscribed)
	}

	var (
		commission ledger.Transfer
		transferID string
	)
	if referrerID != "" {
		keep := money.Full - s.catalog.Referral.CommissionRate
		t, err := s.cash.TransferWithCut(ctx, userID, referrerID, tier.Price, keep, ledger.KindCommission)
		if err != nil {
			return domain.SubscriptionRecord{}, err
		}
		commission, transferID = t, t.ID.String()
	} else if _, err := s.cash.Debit(ctx, userID, tier.Price); err != nil {
		return domain.SubscriptionRecord{}, err
	}

	sub := domain.SubscriptionRecord{
		UserID:      userID,
		Tier:        tier.ID,
		Price:       int64(tier.Price),
		Status:      "active",
		StartDate:   now.UnixMilli(),
		RenewalDate: now.Add(SubscriptionPeriod).UnixMilli(),
	}
	s.subs[userID] = sub
	s.rec.Record(ctx, domain.CollectionSubscriptions, &sub)

	s.journal(ctx, s.cash, userID, "expense", domain.CategorySubscription, tier.Price, referrerID, transferID, "Subscription "+tier.ID)
	if referrerID == "" {
		return sub, nil
	}
	s.journal(ctx, s.cash, referrerID, "income", domain.CategoryCommission, commission.Net, userID, transferID, "Subscription commission")
	s.log.WithFields(logrus.Fields{
		"user_id":     userID,
		"referrer_id": referrerID,
		"tier":        tier.ID,
		"commission":  commission.Net.String(),
	}).Info("Referral commission credited")
	return sub, nil
}

// Subscription returns the active subscription of userID, if any.
func (s *Service) Subscription(userID string) (domain.SubscriptionRecord, bool) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub, ok := s.subs[userID]
	if !ok || s.now().UnixMilli() >= sub.RenewalDate {
		return domain.SubscriptionRecord{}, false
	}
	return sub, true
}

// ReferralEarnings estimates what a referrer makes from count sign-ups plus
// the commission on subscriptionEarnings.
func ReferralEarnings(count int64, subscriptionEarnings money.Amount, bonus money.Amount, rate money.Rate) (money.Amount, error) {
	if count < 0 || subscriptionEarnings < 0 || bonus < 0 {
		return 0, money.ErrInvalidAmount
	}
	if !rate.Valid() {
		return 0, money.ErrInvalidRate
	}
	_, commission := money.SplitCut(subscriptionEarnings, rate)
	return bonus*money.Amount(count) + commission, nil
}

// ReferralEarnings applies the catalog bonus and commission rate.
func (s *Service) ReferralEarnings(count int64, subscriptionEarnings money.Amount) (money.Amount, error) {
	rc := s.catalog.Referral
	return ReferralEarnings(count, subscriptionEarnings, rc.ReferrerCash, rc.CommissionRate)
}

var (
	perView  = decimal.RequireFromString("0.001")
	perLike  = decimal.RequireFromString("0.01")
	perShare = decimal.RequireFromString("0.05")
)

// CreatorEarnings estimates a creator's revenue from engagement counts.
func CreatorEarnings(views, likes, shares int64, multiplier decimal.Decimal) decimal.Decimal {
	base := perView.Mul(decimal.NewFromInt(views)).
		Add(perLike.Mul(decimal.NewFromInt(likes))).
		Add(perShare.Mul(decimal.NewFromInt(shares)))
	return base.Mul(multiplier)
}

// CreatorEarnings applies the earnings multiplier of planID.
func (s *Service) CreatorEarnings(views, likes, shares int64, planID string) (decimal.Decimal, error) {
	p, ok := s.catalog.Plan(planID)
	if !ok {
		return decimal.Zero, fmt.Errorf("plan %q: %w", planID, ErrUnknownItem)
	}
	return CreatorEarnings(views, likes, shares, p.EarningsMultiplier), nil
}
