package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For cache durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort         string        // Application port
	DBUser          string        // Database user
	DBPassword      string        // Database password
	DBHost          string        // Database host
	DBPort          string        // Database port
	DBName          string        // Database name
	JWTSecret       string        // JWT secret key
	RedisAddr       string        // Redis server address
	RedisPass       string        // Redis password
	RedisDB         int           // Redis database number
	IsProd          bool          // Is production environment
	CatalogPath     string        // Optional YAML catalog overriding the built-in one
	WithdrawPerHour int           // Withdrawals allowed per user per hour
	WithdrawBurst   int           // Withdrawals allowed back to back
	CacheTTL        time.Duration // Lifetime of cached reads
	LedgerBackend   string        // mysql or memory
}

// DSN returns the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:         envOr("APP_PORT", "8080"),      // Application port
		DBUser:          os.Getenv("DB_USER"),           // Database user
		DBPassword:      os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:          os.Getenv("DB_HOST"),           // Database host
		DBPort:          os.Getenv("DB_PORT"),           // Database port
		DBName:          os.Getenv("DB_NAME"),           // Database name
		JWTSecret:       os.Getenv("JWT_SECRET"),        // JWT secret key
		RedisAddr:       os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:       os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:         redisDB,                        // Redis database number
		IsProd:          os.Getenv("IS_PROD") == "true", // Is production environment
		CatalogPath:     os.Getenv("CATALOG_PATH"),      // Empty means built-in catalog
		WithdrawPerHour: intOr("WITHDRAW_PER_HOUR", 5),  // Sustained withdrawal rate
		WithdrawBurst:   intOr("WITHDRAW_BURST", 3),     // Withdrawal burst
		CacheTTL:        time.Duration(intOr("CACHE_TTL_SECONDS", 60)) * time.Second,
		LedgerBackend:   envOr("LEDGER_BACKEND", "mysql"), // Where balances live
	}
}

// envOr returns the variable or def when it is unset
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intOr returns the variable as an int, or def when unset or malformed
func intOr(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
