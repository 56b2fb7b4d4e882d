package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
	"gorm.io/gorm"                                            // GORM ORM library

	"reels_monetization/internal/middleware" // Auth and metrics middleware
	"reels_monetization/internal/rewards"    // Monetization service
	"reels_monetization/internal/utils"      // Cache
)

// RouterConfig holds what the HTTP layer needs
type RouterConfig struct {
	DB             *gorm.DB         // Users and journal reads
	Service        *rewards.Service // Monetization operations
	Cache          utils.Cache      // Read cache
	JWTSecret      string           // Token signing key
	TrustedProxies []string         // Proxies allowed to set client IP headers
}

// NewRouter registers every route
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	db, svc, cache := cfg.DB, cfg.Service, cfg.Cache
	cat := svc.Catalog()

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes
	r.POST("/user", RegisterHandler(db, svc))
	r.POST("/user/login", LoginHandler(db, cfg.JWTSecret))

	// Public reference data
	catalogGroup := r.Group("/catalog")
	catalogGroup.GET("", CatalogHandler(cat))
	catalogGroup.GET("/plans", PlansHandler(cat))
	catalogGroup.GET("/coin-packages", CoinPackagesHandler(cat))
	catalogGroup.GET("/gifts", GiftsHandler(cat))
	catalogGroup.GET("/badges", BadgesHandler(cat))
	r.GET("/leaderboard", LeaderboardHandler(svc))
	r.GET("/challenges", ListChallengesHandler(svc))

	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret)

	// Wallet routes (protected by JWT)
	walletGroup := r.Group("/wallet", auth)
	walletGroup.GET("", GetWalletHandler(svc, cache))
	walletGroup.GET("/transactions", GetTransactionHistoryHandler(db, cache))
	walletGroup.POST("/rewarded-ad", RewardedAdHandler(svc, cache))
	walletGroup.POST("/purchase", PurchaseCoinsHandler(svc, cache))
	walletGroup.POST("/gift", SendGiftHandler(db, svc, cache))
	walletGroup.POST("/convert-coins", ConvertCoinsHandler(svc, cache))
	walletGroup.POST("/withdraw", WithdrawHandler(svc, cache))

	// Engagement routes
	progressGroup := r.Group("/progress", auth)
	progressGroup.GET("", DashboardHandler(svc))
	progressGroup.POST("/watch", WatchVideoHandler(svc))
	progressGroup.POST("/interact", InteractHandler(svc))
	progressGroup.POST("/voice-comment", VoiceCommentHandler(svc))
	r.POST("/challenges/:id/join", auth, JoinChallengeHandler(svc))
	r.POST("/challenges/:id/complete", auth, CompleteChallengeHandler(svc))

	// Revenue routes
	r.POST("/subscriptions", auth, SubscribeHandler(db, svc, cache))
	r.GET("/referrals", auth, ReferralsHandler(db, svc))
	r.GET("/earnings/estimate", auth, CreatorEarningsHandler(db, svc))

	// Privacy routes
	privacyGroup := r.Group("/privacy", auth)
	privacyGroup.GET("", GetPrivacyHandler(svc))
	privacyGroup.PUT("", UpdatePrivacyHandler(svc))
	privacyGroup.POST("/2fa", EnableTwoFactorHandler(svc))
	privacyGroup.GET("/export", ExportDataHandler(svc))
	privacyGroup.DELETE("/account", DeleteAccountHandler(db, svc, cache))

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin", auth, middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/users", ListUsersHandler(db, svc, cache))
	adminGroup.GET("/transactions", ListTransactionsHandler(db, cache))
	adminGroup.POST("/bonus", AddBonusHandler(svc, cache))
	adminGroup.POST("/challenges", CreateChallengeHandler(svc))
	adminGroup.POST("/sponsored", SponsoredContentHandler(svc, cache))

	return r, nil
}
