package domain

// Collection names. Each collection is a table written through the record sink.
const (
	CollectionTransactions          = "transactions"
	CollectionGifts                 = "gifts"
	CollectionSponsoredContent      = "sponsored_content"
	CollectionReferrals             = "referrals"
	CollectionSubscriptions         = "subscriptions"
	CollectionCoinPurchases         = "coin_purchases"
	CollectionWithdrawals           = "withdrawals"
	CollectionChallenges            = "challenges"
	CollectionChallengeParticipants = "challenge_participants"
	CollectionChallengeCompletions  = "challenge_completions"
	CollectionUserBadges            = "user_badges"
	CollectionVoiceComments         = "voice_comments"
	CollectionSecurityAuditLog      = "security_audit_log"
	CollectionPrivacySettings       = "privacy_settings"
	CollectionDataDeletionRequests  = "data_deletion_requests"
	CollectionTwoFactorSettings     = "two_factor_settings"
)

// GiftRecord is written for every gift sent
type GiftRecord struct {
	ID             uint   `gorm:"primaryKey"`
	TransferID     string `gorm:"size:36;index"`
	SenderID       string `gorm:"size:64;index"`
	ReceiverID     string `gorm:"size:64;index"`
	GiftID         string `gorm:"size:32"`
	Quantity       int
	Amount         int64 // Gross coins in minor units
	ReceiverAmount int64 // Net coins credited to the receiver
	CreatedAt      int64 `gorm:"autoCreateTime:milli"`
}

// SponsoredRecord is written when a brand pays a creator
type SponsoredRecord struct {
	ID              uint   `gorm:"primaryKey"`
	TransferID      string `gorm:"size:36;index"`
	CreatorID       string `gorm:"size:64;index"`
	BrandID         string `gorm:"size:64"`
	Amount          int64
	CreatorEarnings int64
	CreatedAt       int64 `gorm:"autoCreateTime:milli"`
}

// ReferralRecord links a referrer to the user they brought in
type ReferralRecord struct {
	ID            uint   `gorm:"primaryKey"`
	ReferrerID    string `gorm:"size:64;index"`
	NewUserID     string `gorm:"size:64;uniqueIndex"`
	ReferrerBonus int64
	ReferredBonus int64
	CreatedAt     int64 `gorm:"autoCreateTime:milli"`
}

// SubscriptionRecord is a paid tier activation
type SubscriptionRecord struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      string `gorm:"size:64;index"`
	Tier        string `gorm:"size:16"`
	Price       int64  // Cents
	Status      string `gorm:"size:16"`
	StartDate   int64
	RenewalDate int64
	CreatedAt   int64 `gorm:"autoCreateTime:milli"`
}

// CoinPurchaseRecord is a coin package bought through the payment gateway
type CoinPurchaseRecord struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        string `gorm:"size:64;index"`
	PackageID     string `gorm:"size:32"`
	PaymentMethod string `gorm:"size:32"`
	Price         int64  // Cents charged after discount
	Coins         int64  // Coins credited in minor units, bonus included
	CreatedAt     int64  `gorm:"autoCreateTime:milli"`
}

// WithdrawalRecord is a bank payout request
type WithdrawalRecord struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      string `gorm:"size:64;index"`
	Amount      int64
	BankAccount string `gorm:"size:64"`
	Status      string `gorm:"size:16"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli"`
}

// ChallengeRecord is a weekly challenge definition
type ChallengeRecord struct {
	ID          uint   `gorm:"primaryKey"`
	ChallengeID string `gorm:"size:64;uniqueIndex"`
	Title       string `gorm:"size:128"`
	Description string `gorm:"size:255"`
	Reward      int64
	EndsAt      int64
	CreatedAt   int64 `gorm:"autoCreateTime:milli"`
}

// ChallengeParticipant marks a user who joined a challenge
type ChallengeParticipant struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      string `gorm:"size:64;index"`
	ChallengeID string `gorm:"size:64;index"`
	Completed   bool
	JoinedAt    int64 `gorm:"autoCreateTime:milli"`
}

// ChallengeCompletion is written when a user finishes a challenge
type ChallengeCompletion struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      string `gorm:"size:64;index"`
	ChallengeID string `gorm:"size:64;index"`
	Reward      int64
	CompletedAt int64 `gorm:"autoCreateTime:milli"`
}

// UserBadge is one badge awarded to a user
type UserBadge struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:64;index"`
	BadgeID   string `gorm:"size:32"`
	AwardedAt int64  `gorm:"autoCreateTime:milli"`
}

// VoiceComment is a short audio comment on a video
type VoiceComment struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:64;index"`
	VideoID   string `gorm:"size:64;index"`
	AudioURL  string `gorm:"size:255"`
	Likes     int
	CreatedAt int64 `gorm:"autoCreateTime:milli"`
}

// SecurityEvent is one entry of the security audit log
type SecurityEvent struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:64;index"`
	EventType string `gorm:"size:64;index"`
	Details   string `gorm:"type:text"` // JSON encoded
	IPAddress string `gorm:"size:64"`
	CreatedAt int64  `gorm:"autoCreateTime:milli"`
}

// PrivacySettings holds per-user visibility and consent flags
type PrivacySettings struct {
	ID                  uint   `gorm:"primaryKey" json:"-"`
	UserID              string `gorm:"size:64;index" json:"user_id"`
	ProfileVisibility   string `gorm:"size:16" json:"profile_visibility"` // public, private, friends_only
	ShowEmail           bool   `json:"show_email"`
	ShowPhoneNumber     bool   `json:"show_phone_number"`
	AllowDirectMessages bool   `json:"allow_direct_messages"`
	AllowDataCollection bool   `json:"allow_data_collection"`
	AllowAnalytics      bool   `json:"allow_analytics"`
	ShowWatchHistory    bool   `json:"show_watch_history"`
	UpdatedAt           int64  `gorm:"autoUpdateTime:milli" json:"updated_at"`
}

// DataDeletionRequest records a right-to-be-forgotten request
type DataDeletionRequest struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      string `gorm:"size:64;index"`
	Status      string `gorm:"size:16"`
	RequestedAt int64  `gorm:"autoCreateTime:milli"`
}

// TwoFactorSetting stores a user's 2FA enrollment
type TwoFactorSetting struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:64;uniqueIndex"`
	Secret    string `gorm:"size:64"`
	Enabled   bool
	CreatedAt int64 `gorm:"autoCreateTime:milli"`
}
