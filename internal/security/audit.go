package security

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"reels_monetization/internal/domain"
	"reels_monetization/internal/record"
)

// Audit event types.
const (
	EventGiftSent             = "gift_sent"
	EventWithdrawalRequested  = "withdrawal_requested"
	EventSuspiciousWithdrawal = "suspicious_withdrawal"
	EventChallengeJoined      = "challenge_joined"
	EventChallengeCompleted   = "challenge_completed"
	EventPrivacyUpdated       = "privacy_settings_updated"
	EventDataExported         = "data_exported"
	EventDataDeletion         = "data_deletion_requested"
	EventTwoFactorEnrolled    = "two_factor_enrolled"
	EventBonusGranted         = "bonus_granted"
	EventCoinsConverted       = "coins_converted"
)

// Auditor appends events to the security audit log.
type Auditor struct {
	rec *record.Recorder
}

func NewAuditor(rec *record.Recorder) *Auditor {
	return &Auditor{rec: rec}
}

// Audit records event for userID. Failures are logged by the recorder.
func (a *Auditor) Audit(ctx context.Context, userID, event string, details map[string]any) {
	raw, err := json.Marshal(details)
	if err != nil {
		raw = []byte(fmt.Sprintf(`{"encode_error":%q}`, err.Error()))
	}
	a.rec.Record(ctx, domain.CollectionSecurityAuditLog, &domain.SecurityEvent{
		UserID:    userID,
		EventType: event,
		Details:   string(raw),
		IPAddress: IPFromContext(ctx),
	})
}

type ipKey struct{}

// WithIP attaches the client address to ctx for audit entries.
func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipKey{}, ip)
}

func IPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ipKey{}).(string)
	return ip
}

// DefaultPrivacy returns the settings of a new user: public profile, direct
// messages on, everything else off.
func DefaultPrivacy(userID string) domain.PrivacySettings {
	return domain.PrivacySettings{
		UserID:              userID,
		ProfileVisibility:   "public",
		AllowDirectMessages: true,
	}
}

// ValidVisibility reports whether v is a known profile visibility.
func ValidVisibility(v string) bool {
	switch v {
	case "public", "private", "friends_only":
		return true
	}
	return false
}

// NewTOTPSecret returns 32 random bytes, hex encoded.
func NewTOTPSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate totp secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
