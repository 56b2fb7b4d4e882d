package rewards

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reels_monetization/internal/domain"
	"reels_monetization/internal/ledger"
	"reels_monetization/internal/progress"
	"reels_monetization/internal/security"
)

var ErrInvalidPrivacy = errors.New("invalid privacy settings")

// Dashboard summarizes a user's wallets and progress.
type Dashboard struct {
	UserID   string          `json:"user_id"`
	Wallets  Wallets         `json:"wallets"`
	Progress progress.Record `json:"progress"`
	Level    int64           `json:"level"`
	Rank     int             `json:"rank"`
}

func (s *Service) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	w, err := s.Balances(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	rec, ok := s.progress.Progress(userID)
	if !ok {
		rec = progress.Record{UserID: userID}
	}
	return Dashboard{
		UserID:   userID,
		Wallets:  w,
		Progress: rec,
		Level:    rec.Level(),
		Rank:     s.progress.Rank(userID),
	}, nil
}

// Privacy returns the stored settings of userID, or the defaults.
func (s *Service) Privacy(userID string) domain.PrivacySettings {
	s.privacyMu.Lock()
	defer s.privacyMu.Unlock()
	if p, ok := s.privacy[userID]; ok {
		return p
	}
	return security.DefaultPrivacy(userID)
}

// UpdatePrivacy replaces the settings of userID.
func (s *Service) UpdatePrivacy(ctx context.Context, userID string, p domain.PrivacySettings) (domain.PrivacySettings, error) {
	if !security.ValidVisibility(p.ProfileVisibility) {
		return domain.PrivacySettings{}, fmt.Errorf("profile visibility %q: %w", p.ProfileVisibility, ErrInvalidPrivacy)
	}
	p.UserID = userID
	p.UpdatedAt = s.millis()
	s.privacyMu.Lock()
	s.privacy[userID] = p
	s.privacyMu.Unlock()

	s.rec.Record(ctx, domain.CollectionPrivacySettings, &p)
	s.audit.Audit(ctx, userID, security.EventPrivacyUpdated, map[string]any{
		"profile_visibility": p.ProfileVisibility,
	})
	return p, nil
}

// EnableTwoFactor enrolls userID and returns the new TOTP secret.
func (s *Service) EnableTwoFactor(ctx context.Context, userID string) (string, error) {
	secret, err := security.NewTOTPSecret()
	if err != nil {
		return "", err
	}
	s.rec.Record(ctx, domain.CollectionTwoFactorSettings, &domain.TwoFactorSetting{
		UserID:  userID,
		Secret:  secret,
		Enabled: true,
	})
	s.audit.Audit(ctx, userID, security.EventTwoFactorEnrolled, nil)
	return secret, nil
}

// Export is the data portability bundle of one user.
type Export struct {
	UserID     string                 `json:"user_id"`
	Wallets    Wallets                `json:"wallets"`
	Progress   progress.Record        `json:"progress"`
	Privacy    domain.PrivacySettings `json:"privacy"`
	ExportedAt time.Time              `json:"exported_at"`
}

func (s *Service) ExportUser(ctx context.Context, userID string) (Export, error) {
	w, err := s.Balances(ctx, userID)
	if err != nil {
		return Export{}, err
	}
	rec, ok := s.progress.Progress(userID)
	if !ok {
		rec = progress.Record{UserID: userID}
	}
	s.audit.Audit(ctx, userID, security.EventDataExported, nil)
	return Export{
		UserID:     userID,
		Wallets:    w,
		Progress:   rec,
		Privacy:    s.Privacy(userID),
		ExportedAt: s.now().UTC(),
	}, nil
}

// DeleteUser removes the wallets, progress and settings of userID. Accounts
// that were never opened are skipped.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	for _, l := range []*ledger.Ledger{s.coins, s.cash} {
		if err := l.DeleteAccount(ctx, userID); err != nil && !errors.Is(err, ledger.ErrNotFound) {
			return err
		}
	}
	if err := s.progress.Forget(userID); err != nil && !errors.Is(err, progress.ErrNotFound) {
		return err
	}
	s.guard.Forget(userID)
	s.privacyMu.Lock()
	delete(s.privacy, userID)
	s.privacyMu.Unlock()
	s.subsMu.Lock()
	delete(s.subs, userID)
	s.subsMu.Unlock()

	s.rec.Record(ctx, domain.CollectionDataDeletionRequests, &domain.DataDeletionRequest{
		UserID: userID,
		Status: "completed",
	})
	s.audit.Audit(ctx, userID, security.EventDataDeletion, nil)
	return nil
}
