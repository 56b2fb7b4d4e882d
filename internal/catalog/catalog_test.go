package catalog

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"reels_monetization/internal/money"
)

func TestDiscountedPrice(t *testing.T) {
	c := Default()
	got, ok := c.DiscountedPrice("popular")
	require.True(t, ok)
	require.True(t, got.Equal(decimal.RequireFromString("4.491")), "got %s", got)

	got, ok = c.DiscountedPrice("starter")
	require.True(t, ok)
	require.True(t, got.Equal(decimal.RequireFromString("0.99")))

	_, ok = c.DiscountedPrice("nope")
	require.False(t, ok)
}

func TestTotalCoins(t *testing.T) {
	c := Default()
	tests := []struct {
		id   string
		want int64
	}{
		{"starter", 100},
		{"popular", 550},
		{"mega", 1200},
		{"ultimate", 6000},
	}
	for _, ts := range tests {
		got, ok := c.TotalCoins(ts.id)
		require.True(t, ok, ts.id)
		require.Equal(t, ts.want, got, ts.id)
	}
	_, ok := c.TotalCoins("missing")
	require.False(t, ok)
}

func TestGiftCost(t *testing.T) {
	c := Default()
	cost, ok := c.GiftCost("crown", 3)
	require.True(t, ok)
	require.Equal(t, int64(150), cost)

	_, ok = c.GiftCost("crown", 0)
	require.False(t, ok)
	_, ok = c.GiftCost("plane", 1)
	require.False(t, ok)
}

func TestGiftCostOverflow(t *testing.T) {
	c := Default()
	g, ok := c.Gift("rocket")
	require.True(t, ok)

	most := int(money.MaxUnits / g.Price)
	cost, ok := c.GiftCost("rocket", most)
	require.True(t, ok)
	require.LessOrEqual(t, cost, money.MaxUnits)
	require.Positive(t, money.FromUnits(cost))

	for _, qty := range []int{most + 1, int(money.MaxUnits), math.MaxInt} {
		_, ok = c.GiftCost("rocket", qty)
		require.False(t, ok, "qty %d", qty)
	}
}

func TestLookups(t *testing.T) {
	c := Default()
	p, ok := c.Plan("pro")
	require.True(t, ok)
	require.Equal(t, money.Amount(499), p.Price)
	require.True(t, p.EarningsMultiplier.Equal(decimal.RequireFromString("1.5")))

	tier, ok := c.Tier("gold")
	require.True(t, ok)
	require.Equal(t, "9.99", tier.Price.String())

	_, ok = c.Tier("platinum")
	require.False(t, ok)
	_, ok = c.Badge("influencer")
	require.True(t, ok)
}

func TestBadgesSortedByRequirementThenID(t *testing.T) {
	c := Default()
	ids := make([]string, 0, len(c.Badges))
	for _, b := range c.Badges {
		ids = append(ids, b.ID)
	}
	require.Equal(t, []string{
		"first_video",
		"generous_gifter",
		"agriculture_expert",
		"health_guru",
		"science_enthusiast",
		"learning_master",
		"social_butterfly",
		"influencer",
	}, ids)
}

func TestPoints(t *testing.T) {
	c := Default()
	require.Equal(t, int64(10), c.WatchPoints(6))
	require.Equal(t, int64(5), c.WatchPoints(3))
	require.Equal(t, int64(5), c.WatchPoints(5))
	require.Equal(t, int64(0), c.WatchPoints(2))

	p, ok := c.InteractionPoints("share")
	require.True(t, ok)
	require.Equal(t, int64(10), p)
	_, ok = c.InteractionPoints("poke")
	require.False(t, ok)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	raw := `
gifts:
  - id: rose
    name: Rose
    price: 2
  - id: plane
    name: Plane
    price: 500
badges:
  - id: b
    requirement: 10
  - id: a
    requirement: 10
  - id: z
    requirement: 1
referral:
  referrer_coins: 100
  referred_coins: 50
  referrer_cash: "1.00"
  referred_cash: "0.50"
  commission_rate: "0.15"
coin_packages:
  - id: tiny
    coins: 10
    price: "0.10"
    discount: 0
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	cost, ok := c.GiftCost("plane", 1)
	require.True(t, ok)
	require.Equal(t, int64(500), cost)
	_, ok = c.Gift("crown")
	require.False(t, ok, "gift list is replaced, not merged")

	require.Equal(t, "z", c.Badges[0].ID)
	require.Equal(t, "a", c.Badges[1].ID)
	require.Equal(t, "b", c.Badges[2].ID)

	require.Equal(t, money.Percent(15), c.Referral.CommissionRate)
	require.Equal(t, money.Amount(100), c.Referral.ReferrerCash)

	price, ok := c.DiscountedPrice("tiny")
	require.True(t, ok)
	require.True(t, price.Equal(decimal.RequireFromString("0.1")))

	_, ok = c.Plan("creator")
	require.True(t, ok, "sections absent from the file keep defaults")
}

func TestLoadEmptyPath(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Len(t, c.Gifts, 6)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []string{
		"gifts:\n  - id: rose\n    price: 1\n  - id: rose\n    price: 2\n",
		"gifts:\n  - id: free\n    price: 0\n",
		"coin_packages:\n  - id: p\n    price: \"1.00\"\n    discount: 150\n",
		"referral:\n  commission_rate: \"1.5\"\n",
		"conversion:\n  coins: 0\n",
		"conversion:\n  coins: 100\n  cash: \"0.70\"\n",
	}
	for _, raw := range tests {
		_, err := parse(Default(), []byte(raw))
		require.Error(t, err, raw)
	}
}

func TestConversionCash(t *testing.T) {
	c := Default()
	cash, ok := c.ConversionCash(1000)
	require.True(t, ok)
	require.Equal(t, money.Amount(500), cash)

	for _, coins := range []int64{0, -100, 99, 150} {
		_, ok = c.ConversionCash(coins)
		require.False(t, ok, coins)
	}
	_, ok = c.ConversionCash(math.MaxInt64 - math.MaxInt64%100)
	require.False(t, ok, "more coins than a balance can hold")
}
