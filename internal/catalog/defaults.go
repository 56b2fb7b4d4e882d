package catalog

import (
	"github.com/shopspring/decimal"

	"reels_monetization/internal/money"
)

// Default returns the built-in catalog.
func Default() *Catalog {
	c := &Catalog{
		Plans: []Plan{
			{ID: "free", Name: "Free", Price: 0, Currency: "USD", Duration: "monthly",
				Features: []string{"Basic features", "5GB storage"}, StorageLimitGB: 5,
				EarningsMultiplier: decimal.NewFromInt(1)},
			{ID: "pro", Name: "Pro", Price: 499, Currency: "USD", Duration: "monthly",
				Features: []string{"Ad-free", "50GB storage", "Advanced analytics", "Custom branding"}, StorageLimitGB: 50,
				AdFree: true, PrioritySupport: true, EarningsMultiplier: decimal.RequireFromString("1.5")},
			{ID: "premium", Name: "Premium", Price: 999, Currency: "USD", Duration: "monthly",
				Features: []string{"Everything in Pro", "200GB storage", "Priority support", "Early access to features"}, StorageLimitGB: 200,
				AdFree: true, PrioritySupport: true, EarningsMultiplier: decimal.NewFromInt(2)},
			{ID: "creator", Name: "Creator", Price: 1999, Currency: "USD", Duration: "monthly",
				Features: []string{"Everything in Premium", "Unlimited storage", "Creator tools", "Revenue sharing"}, StorageLimitGB: 500,
				AdFree: true, PrioritySupport: true, EarningsMultiplier: decimal.NewFromInt(3)},
		},
		Tiers: []Tier{
			{ID: "silver", Price: 499},
			{ID: "gold", Price: 999},
			{ID: "diamond", Price: 1999},
		},
		CoinPackages: []CoinPackage{
			{ID: "starter", Name: "Starter Pack", Coins: 100, Price: decimal.RequireFromString("0.99"), Currency: "USD"},
			{ID: "popular", Name: "Popular Pack", Coins: 500, Bonus: 50, Price: decimal.RequireFromString("4.99"), Currency: "USD", Discount: 10, Popular: true},
			{ID: "mega", Name: "Mega Pack", Coins: 1000, Bonus: 200, Price: decimal.RequireFromString("9.99"), Currency: "USD", Discount: 20},
			{ID: "ultimate", Name: "Ultimate Pack", Coins: 5000, Bonus: 1000, Price: decimal.RequireFromString("49.99"), Currency: "USD", Discount: 25},
		},
		Gifts: []Gift{
			{ID: "rose", Name: "Rose", Price: 1, Icon: "🌹", Animation: "float", Category: "romantic"},
			{ID: "diamond", Name: "Diamond", Price: 10, Icon: "💎", Animation: "sparkle", Category: "premium"},
			{ID: "crown", Name: "Crown", Price: 50, Icon: "👑", Animation: "spin", Category: "premium"},
			{ID: "rocket", Name: "Rocket", Price: 100, Icon: "🚀", Animation: "fly", Category: "premium"},
			{ID: "heart", Name: "Heart", Price: 5, Icon: "❤️", Animation: "pulse", Category: "romantic"},
			{ID: "star", Name: "Star", Price: 20, Icon: "⭐", Animation: "twinkle", Category: "premium"},
		},
		Badges: []Badge{
			{ID: "first_video", Name: "First Steps", Description: "Watch your first video", Icon: "🎬", Requirement: 1},
			{ID: "learning_master", Name: "Learning Master", Description: "Watch 100 learning videos", Icon: "🎓", Requirement: 100},
			{ID: "agriculture_expert", Name: "Agriculture Expert", Description: "Watch 50 agriculture videos", Icon: "🌱", Requirement: 50},
			{ID: "health_guru", Name: "Health Guru", Description: "Watch 50 health videos", Icon: "⚕️", Requirement: 50},
			{ID: "science_enthusiast", Name: "Science Enthusiast", Description: "Watch 50 science videos", Icon: "🔬", Requirement: 50},
			{ID: "social_butterfly", Name: "Social Butterfly", Description: "Like or comment on 100 videos", Icon: "🦋", Requirement: 100},
			{ID: "generous_gifter", Name: "Generous Gifter", Description: "Send 10 virtual gifts", Icon: "🎁", Requirement: 10},
			{ID: "influencer", Name: "Influencer", Description: "Reach 1000 followers", Icon: "⭐", Requirement: 1000},
		},
		Referral: Referral{
			ReferrerCoins:  500,
			ReferredCoins:  250,
			ReferrerCash:   500,
			ReferredCash:   250,
			CommissionRate: money.Percent(10),
		},
		Engagement: Engagement{
			WatchFullSeconds:    6,
			WatchFullPoints:     10,
			WatchPartialSeconds: 3,
			WatchPartialPoints:  5,
			LikePoints:          2,
			CommentPoints:       5,
			SharePoints:         10,
			VoiceCommentPoints:  10,
			RewardedAdCoins:     50,
		},
		Conversion: Conversion{Coins: 100, Cash: 50},
	}
	sortBadges(c.Badges)
	return c
}
