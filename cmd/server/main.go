package main

import (
	"context" // context package is needed for Redis operations
	"time"    // Cleanup interval

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/gorm"                 // GORM ORM library

	"reels_monetization/internal/api"      // Custom package for API handlers
	"reels_monetization/internal/catalog"  // Reference data
	"reels_monetization/internal/config"   // Custom package for configuration
	"reels_monetization/internal/db"       // Database connection
	"reels_monetization/internal/ledger"   // Coin and cash ledgers
	"reels_monetization/internal/progress" // Points, badges, challenges
	"reels_monetization/internal/record"   // Document persistence
	"reels_monetization/internal/rewards"  // Monetization service
	"reels_monetization/internal/security" // Fraud guard
	"reels_monetization/internal/utils"    // Cache
)

// ledgerStore picks where balances are kept
func ledgerStore(backend string, conn *gorm.DB, name string) ledger.Store {
	if backend == "memory" {
		return ledger.NewMemoryStore() // Balances are lost on restart
	}
	return ledger.NewGormStore(conn, name)
}

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logrus.Fatalf("failed to load catalog: %v", err)
	}

	conn, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	log := logrus.StandardLogger()
	guard := security.NewGuard(map[string]security.Limit{
		security.ActivityWithdrawal: {PerHour: cfg.WithdrawPerHour, Burst: cfg.WithdrawBurst},
		security.ActivityGift:       {PerHour: 600, Burst: 60},
		security.ActivityPurchase:   {PerHour: 30, Burst: 10},
	})
	guard.StartCleanup(context.Background(), 10*time.Minute) // Drop idle limiters
	svc := rewards.New(rewards.Deps{
		Catalog:  cat,
		Coins:    ledger.New(rewards.LedgerCoins, ledgerStore(cfg.LedgerBackend, conn, rewards.LedgerCoins)),
		Cash:     ledger.New(rewards.LedgerCash, ledgerStore(cfg.LedgerBackend, conn, rewards.LedgerCash)),
		Progress: progress.NewEngine(progress.NewMemoryStore(), cat.Badges),
		Recorder: record.NewRecorder(record.NewGormSink(conn), log),
		Guard:    guard,
		Log:      log,
	})

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := api.NewRouter(api.RouterConfig{
		DB:             conn,
		Service:        svc,
		Cache:          utils.NewRedisCache(redisClient, cfg.CacheTTL),
		JWTSecret:      cfg.JWTSecret,
		TrustedProxies: []string{"127.0.0.1"},
	})
	if err != nil {
		logrus.Fatalf("failed to set up router: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":           cfg.AppPort,
		"ledger_backend": cfg.LedgerBackend,
		"gifts":          len(cat.Gifts),
	}).Info("Server starting")
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
