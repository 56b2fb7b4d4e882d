package rewards

import (
	"context"
	"fmt"

	"reels_monetization/internal/catalog"
	"reels_monetization/internal/domain"
	"reels_monetization/internal/progress"
	"reels_monetization/internal/security"
)

// Activity is the outcome of an engagement event.
type Activity struct {
	Points    int64           `json:"points"`
	Progress  progress.Record `json:"progress"`
	Level     int64           `json:"level"`
	NewBadges []catalog.Badge `json:"new_badges"`
}

// award adds points, evaluates badges and records the new ones.
func (s *Service) award(ctx context.Context, userID, activity string, points int64) (Activity, error) {
	rec, err := s.progress.AddPoints(userID, points)
	if err != nil {
		return Activity{}, err
	}
	pointsAwarded.WithLabelValues(activity).Add(float64(points))

	badges := s.progress.EvaluateBadges(userID)
	for _, b := range badges {
		s.rec.Record(ctx, domain.CollectionUserBadges, &domain.UserBadge{UserID: userID, BadgeID: b.ID})
		badgesAwarded.Inc()
	}
	if len(badges) > 0 {
		rec, _ = s.progress.Progress(userID)
	}
	return Activity{Points: points, Progress: rec, Level: rec.Level(), NewBadges: badges}, nil
}

// WatchVideo awards points for watching videoID for seconds.
func (s *Service) WatchVideo(ctx context.Context, userID, videoID string, seconds int) (Activity, error) {
	if seconds < 0 {
		return Activity{}, fmt.Errorf("watch %s for %ds: %w", videoID, seconds, ErrInvalidActivity)
	}
	return s.award(ctx, userID, "watch", s.catalog.WatchPoints(seconds))
}

// Interact awards points for a like, comment or share.
func (s *Service) Interact(ctx context.Context, userID, videoID, kind string) (Activity, error) {
	points, ok := s.catalog.InteractionPoints(kind)
	if !ok {
		return Activity{}, fmt.Errorf("%q on %s: %w", kind, videoID, ErrInvalidActivity)
	}
	return s.award(ctx, userID, kind, points)
}

// VoiceComment stores an audio comment and awards its points.
func (s *Service) VoiceComment(ctx context.Context, userID, videoID, audioURL string) (Activity, error) {
	if videoID == "" || audioURL == "" {
		return Activity{}, fmt.Errorf("voice comment: %w", ErrInvalidActivity)
	}
	s.rec.Record(ctx, domain.CollectionVoiceComments, &domain.VoiceComment{
		UserID:   userID,
		VideoID:  videoID,
		AudioURL: audioURL,
	})
	return s.award(ctx, userID, "voice_comment", s.catalog.Engagement.VoiceCommentPoints)
}

// CreateChallenge opens a weekly challenge.
func (s *Service) CreateChallenge(ctx context.Context, title, description string, reward int64) (progress.Challenge, error) {
	c, err := s.progress.CreateChallenge(title, description, reward)
	if err != nil {
		return progress.Challenge{}, err
	}
	s.rec.Record(ctx, domain.CollectionChallenges, &domain.ChallengeRecord{
		ChallengeID: c.ID,
		Title:       c.Title,
		Description: c.Description,
		Reward:      c.Reward,
		EndsAt:      c.EndsAt.UnixMilli(),
	})
	return c, nil
}

// JoinChallenge enrolls userID in challengeID.
func (s *Service) JoinChallenge(ctx context.Context, userID, challengeID string) error {
	if !s.progress.JoinChallenge(userID, challengeID) {
		return fmt.Errorf("challenge %q: %w", challengeID, ErrUnknownItem)
	}
	s.rec.Record(ctx, domain.CollectionChallengeParticipants, &domain.ChallengeParticipant{
		UserID:      userID,
		ChallengeID: challengeID,
	})
	s.audit.Audit(ctx, userID, security.EventChallengeJoined, map[string]any{"challenge_id": challengeID})
	return nil
}

// CompleteChallenge credits the challenge reward. A challenge that is
// unknown, closed, not joined or already completed yields a zero Activity
// and nothing is recorded.
func (s *Service) CompleteChallenge(ctx context.Context, userID, challengeID string) Activity {
	reward := s.progress.CompleteChallenge(userID, challengeID)
	if reward == 0 {
		return Activity{}
	}
	pointsAwarded.WithLabelValues("challenge").Add(float64(reward))
	s.rec.Record(ctx, domain.CollectionChallengeCompletions, &domain.ChallengeCompletion{
		UserID:      userID,
		ChallengeID: challengeID,
		Reward:      reward,
	})
	s.audit.Audit(ctx, userID, security.EventChallengeCompleted, map[string]any{
		"challenge_id": challengeID,
		"reward":       reward,
	})

	badges := s.progress.EvaluateBadges(userID)
	for _, b := range badges {
		s.rec.Record(ctx, domain.CollectionUserBadges, &domain.UserBadge{UserID: userID, BadgeID: b.ID})
		badgesAwarded.Inc()
	}
	rec, _ := s.progress.Progress(userID)
	return Activity{Points: reward, Progress: rec, Level: rec.Level(), NewBadges: badges}
}
