package domain

// Wallet Model, one row per user and ledger (coins or cash)
type Wallet struct {
	ID      uint   `gorm:"primaryKey"`                                               // Primary key
	UserID  string `gorm:"size:64;not null;uniqueIndex:idx_wallet_owner,priority:2"` // Ledger account key
	Ledger  string `gorm:"size:16;not null;uniqueIndex:idx_wallet_owner,priority:1"` // coins or cash
	Balance int64  `gorm:"not null;default:0"`                                       // Balance in minor units
}
