package domain

// Transaction categories
const (
	CategoryAdRevenue    = "ad_revenue"
	CategoryGiftReceived = "gift_received"
	CategoryGiftSent     = "gift_sent"
	CategoryCoinPurchase = "coin_purchase"
	CategoryWithdrawal   = "withdrawal"
	CategoryBonus        = "bonus"
	CategoryReferral     = "referral"
	CategorySponsored    = "sponsored"
	CategoryCommission   = "commission"
	CategorySubscription = "subscription"
	CategoryConversion   = "coin_conversion"
)

// Transaction Model, one journal line per ledger movement
type Transaction struct {
	ID           uint   `gorm:"primaryKey" json:"id"`                       // Primary key
	TransferID   string `gorm:"size:36;index" json:"transfer_id,omitempty"` // Shared by both legs of a transfer
	UserID       string `gorm:"size:64;index;not null" json:"user_id"`      // Ledger account key
	Ledger       string `gorm:"size:16;not null" json:"ledger"`             // coins or cash
	Type         string `gorm:"size:16;not null" json:"type"`               // income or expense
	Category     string `gorm:"size:32;index;not null" json:"category"`     // See Category constants
	Amount       int64  `gorm:"not null" json:"amount"`                     // Minor units, always positive
	Counterparty string `gorm:"size:64" json:"counterparty,omitempty"`      // Other side of the movement
	Description  string `gorm:"size:255" json:"description,omitempty"`      // Free text
	Status       string `gorm:"size:16;default:completed" json:"status"`    // completed, pending, failed
	CreatedAt    int64  `gorm:"autoCreateTime:milli" json:"created_at"`     // Timestamp of creation in milliseconds
}
