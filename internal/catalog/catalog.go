// Package catalog holds the static reference data of the monetization
// features: subscription plans and tiers, coin packages, gifts, badges and
// reward constants. A Catalog is loaded once at start-up and never mutated.
// Lookups report absence with a boolean instead of an error.
package catalog

import (
	"cmp"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"reels_monetization/internal/money"
)

// Plan is a subscription plan offered through the payment gateway.
type Plan struct {
	ID                 string          `yaml:"id" json:"id"`
	Name               string          `yaml:"name" json:"name"`
	Price              money.Amount    `yaml:"price" json:"price"`
	Currency           string          `yaml:"currency" json:"currency"`
	Duration           string          `yaml:"duration" json:"duration"`
	Features           []string        `yaml:"features" json:"features"`
	StorageLimitGB     int             `yaml:"storage_limit_gb" json:"storage_limit_gb"`
	AdFree             bool            `yaml:"ad_free" json:"ad_free"`
	PrioritySupport    bool            `yaml:"priority_support" json:"priority_support"`
	EarningsMultiplier decimal.Decimal `yaml:"earnings_multiplier" json:"earnings_multiplier"`
}

// Tier is a monthly creator-support tier.
type Tier struct {
	ID    string       `yaml:"id" json:"id"`
	Price money.Amount `yaml:"price" json:"price"`
}

// CoinPackage is a bundle of coins sold for real money.
type CoinPackage struct {
	ID       string          `yaml:"id" json:"id"`
	Name     string          `yaml:"name" json:"name"`
	Coins    int64           `yaml:"coins" json:"coins"`
	Bonus    int64           `yaml:"bonus" json:"bonus"`
	Price    decimal.Decimal `yaml:"price" json:"price"`
	Currency string          `yaml:"currency" json:"currency"`
	Discount int64           `yaml:"discount" json:"discount"` // percent
	Popular  bool            `yaml:"popular" json:"popular"`
}

// Gift is a virtual gift priced in whole coins.
type Gift struct {
	ID        string `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	Price     int64  `yaml:"price" json:"price"`
	Icon      string `yaml:"icon" json:"icon"`
	Animation string `yaml:"animation" json:"animation"`
	Category  string `yaml:"category" json:"category"`
}

// Badge is awarded once a user's point total reaches Requirement.
type Badge struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Requirement int64  `yaml:"requirement" json:"requirement"`
}

// Referral holds the sign-up bonuses and the subscription commission.
type Referral struct {
	ReferrerCoins  int64        `yaml:"referrer_coins" json:"referrer_coins"`
	ReferredCoins  int64        `yaml:"referred_coins" json:"referred_coins"`
	ReferrerCash   money.Amount `yaml:"referrer_cash" json:"referrer_cash"`
	ReferredCash   money.Amount `yaml:"referred_cash" json:"referred_cash"`
	CommissionRate money.Rate   `yaml:"commission_rate" json:"commission_rate"`
}

// Engagement holds the points awarded for activity.
type Engagement struct {
	WatchFullSeconds    int   `yaml:"watch_full_seconds" json:"watch_full_seconds"`
	WatchFullPoints     int64 `yaml:"watch_full_points" json:"watch_full_points"`
	WatchPartialSeconds int   `yaml:"watch_partial_seconds" json:"watch_partial_seconds"`
	WatchPartialPoints  int64 `yaml:"watch_partial_points" json:"watch_partial_points"`
	LikePoints          int64 `yaml:"like_points" json:"like_points"`
	CommentPoints       int64 `yaml:"comment_points" json:"comment_points"`
	SharePoints         int64 `yaml:"share_points" json:"share_points"`
	VoiceCommentPoints  int64 `yaml:"voice_comment_points" json:"voice_comment_points"`
	RewardedAdCoins     int64 `yaml:"rewarded_ad_coins" json:"rewarded_ad_coins"`
}

// Conversion prices coins in cash when creators cash out. Cash is paid for
// every block of Coins coins.
type Conversion struct {
	Coins int64        `yaml:"coins" json:"coins"`
	Cash  money.Amount `yaml:"cash" json:"cash"`
}

// Catalog is the full set of reference data.
type Catalog struct {
	Plans        []Plan        `yaml:"plans" json:"plans"`
	Tiers        []Tier        `yaml:"tiers" json:"tiers"`
	CoinPackages []CoinPackage `yaml:"coin_packages" json:"coin_packages"`
	Gifts        []Gift        `yaml:"gifts" json:"gifts"`
	Badges       []Badge       `yaml:"badges" json:"badges"`
	Referral     Referral      `yaml:"referral" json:"referral"`
	Engagement   Engagement    `yaml:"engagement" json:"engagement"`
	Conversion   Conversion    `yaml:"conversion" json:"conversion"`
}

func find[T any](items []T, id func(T) string, want string) (T, bool) {
	for _, it := range items {
		if id(it) == want {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *Catalog) Plan(id string) (Plan, bool) {
	return find(c.Plans, func(p Plan) string { return p.ID }, id)
}

func (c *Catalog) Tier(id string) (Tier, bool) {
	return find(c.Tiers, func(t Tier) string { return t.ID }, id)
}

func (c *Catalog) CoinPackage(id string) (CoinPackage, bool) {
	return find(c.CoinPackages, func(p CoinPackage) string { return p.ID }, id)
}

func (c *Catalog) Gift(id string) (Gift, bool) {
	return find(c.Gifts, func(g Gift) string { return g.ID }, id)
}

func (c *Catalog) Badge(id string) (Badge, bool) {
	return find(c.Badges, func(b Badge) string { return b.ID }, id)
}

// DiscountedPrice returns price*(1-discount/100) for a coin package, exact.
func (c *Catalog) DiscountedPrice(packageID string) (decimal.Decimal, bool) {
	p, ok := c.CoinPackage(packageID)
	if !ok {
		return decimal.Zero, false
	}
	return money.Discount(p.Price, decimal.NewFromInt(p.Discount)), true
}

// TotalCoins returns coins plus bonus for a coin package.
func (c *Catalog) TotalCoins(packageID string) (int64, bool) {
	p, ok := c.CoinPackage(packageID)
	if !ok {
		return 0, false
	}
	return p.Coins + p.Bonus, true
}

// GiftCost returns the price of qty gifts in whole coins. qty must be
// positive and small enough for the cost to fit in a money.Amount.
func (c *Catalog) GiftCost(giftID string, qty int) (int64, bool) {
	g, ok := c.Gift(giftID)
	if !ok || qty < 1 || g.Price < 1 || int64(qty) > money.MaxUnits/g.Price {
		return 0, false
	}
	return g.Price * int64(qty), true
}

// ConversionCash returns the cash paid for coins whole coins. coins must be a
// positive multiple of the conversion block.
func (c *Catalog) ConversionCash(coins int64) (money.Amount, bool) {
	cv := c.Conversion
	if cv.Coins < 1 || coins < cv.Coins || coins > money.MaxUnits || coins%cv.Coins != 0 {
		return 0, false
	}
	blocks := coins / cv.Coins
	if cv.Cash < 1 || blocks > int64(math.MaxInt64/cv.Cash) {
		return 0, false
	}
	return money.Amount(blocks) * cv.Cash, true
}

// WatchPoints returns the points for watching a video for seconds.
func (c *Catalog) WatchPoints(seconds int) int64 {
	switch {
	case seconds >= c.Engagement.WatchFullSeconds:
		return c.Engagement.WatchFullPoints
	case seconds >= c.Engagement.WatchPartialSeconds:
		return c.Engagement.WatchPartialPoints
	}
	return 0
}

// InteractionPoints returns the points for a like, comment or share.
func (c *Catalog) InteractionPoints(kind string) (int64, bool) {
	switch kind {
	case "like":
		return c.Engagement.LikePoints, true
	case "comment":
		return c.Engagement.CommentPoints, true
	case "share":
		return c.Engagement.SharePoints, true
	}
	return 0, false
}

// sortBadges orders badges by requirement, then id.
func sortBadges(b []Badge) {
	slices.SortStableFunc(b, func(x, y Badge) int {
		return cmp.Or(cmp.Compare(x.Requirement, y.Requirement), cmp.Compare(x.ID, y.ID))
	})
}
