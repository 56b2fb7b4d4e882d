package domain

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User Model
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`                     // Primary key
	Username     string `gorm:"unique;not null" json:"username"`          // Unique username
	Password     string `gorm:"not null" json:"-"`                        // Hashed password
	Role         string `gorm:"default:user" json:"role"`                 // Role: user or admin
	ReferralCode string `gorm:"size:16;uniqueIndex" json:"referral_code"` // Code other users register with
	ReferredBy   *uint  `gorm:"index" json:"referred_by,omitempty"`       // Referrer user ID, if any
	Tier         string `gorm:"size:16;default:free" json:"tier"`         // Current subscription tier
	CreatedAt    int64  `gorm:"autoCreateTime:milli" json:"created_at"`   // Timestamp of creation in milliseconds
	LastLogin    int64  `gorm:"default:0" json:"last_login"`              // Last login in milliseconds
}
