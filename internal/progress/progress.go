// Package progress accumulates engagement points per user and derives
// levels, badges, challenge completions and the leaderboard from them.
package progress

import (
	"cmp"
	"errors"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"reels_monetization/internal/catalog"
)

// PointsPerLevel is the number of points between two levels.
const PointsPerLevel = 500

// ChallengeDuration is how long a challenge stays open after creation.
const ChallengeDuration = 7 * 24 * time.Hour

var (
	ErrInvalidPoints = errors.New("points must not be negative")
	ErrNotFound      = errors.New("progress record not found")
)

// Record is a user's accumulated progress.
type Record struct {
	UserID              string   `json:"user_id"`
	TotalPoints         int64    `json:"total_points"`
	Badges              []string `json:"badges"`
	ChallengesCompleted int      `json:"challenges_completed"`
	Joined              []string `json:"joined_challenges"`
	Completed           []string `json:"completed_challenges"`
}

// Level is derived from TotalPoints and never stored.
func (r Record) Level() int64 {
	return r.TotalPoints/PointsPerLevel + 1
}

func (r Record) HasBadge(id string) bool {
	return slices.Contains(r.Badges, id)
}

func (r Record) clone() Record {
	r.Badges = slices.Clone(r.Badges)
	r.Joined = slices.Clone(r.Joined)
	r.Completed = slices.Clone(r.Completed)
	return r
}

// Challenge is a weekly challenge users can join and complete.
type Challenge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Reward      int64     `json:"reward"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// Standing is one leaderboard row.
type Standing struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	TotalPoints int64  `json:"total_points"`
	Level       int64  `json:"level"`
	BadgeCount  int    `json:"badge_count"`
}

// Engine applies progress rules on top of a Store.
type Engine struct {
	mu         sync.Mutex
	store      Store
	badges     []catalog.Badge
	challenges map[string]Challenge
	now        func() time.Time
}

// NewEngine returns an engine awarding badges in the given order.
func NewEngine(store Store, badges []catalog.Badge) *Engine {
	return &Engine{
		store:      store,
		badges:     slices.Clone(badges),
		challenges: make(map[string]Challenge),
		now:        time.Now,
	}
}

func (e *Engine) load(userID string) Record {
	if r, ok := e.store.Get(userID); ok {
		return r
	}
	return Record{UserID: userID}
}

// AddPoints adds n points, creating the record on first use.
func (e *Engine) AddPoints(userID string, n int64) (Record, error) {
	if n < 0 {
		return Record{}, ErrInvalidPoints
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addPoints(userID, n), nil
}

func (e *Engine) addPoints(userID string, n int64) Record {
	r := e.load(userID)
	r.TotalPoints += n
	e.store.Put(r)
	return r
}

// EvaluateBadges awards every badge whose requirement is met and returns the
// newly awarded ones in catalog order.
func (e *Engine) EvaluateBadges(userID string) []catalog.Badge {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.store.Get(userID)
	if !ok {
		return nil
	}
	var awarded []catalog.Badge
	for _, b := range e.badges {
		if b.Requirement <= r.TotalPoints && !r.HasBadge(b.ID) {
			r.Badges = append(r.Badges, b.ID)
			awarded = append(awarded, b)
		}
	}
	if len(awarded) > 0 {
		e.store.Put(r)
	}
	return awarded
}

// CreateChallenge opens a new challenge for ChallengeDuration.
func (e *Engine) CreateChallenge(title, description string, reward int64) (Challenge, error) {
	if reward < 0 {
		return Challenge{}, ErrInvalidPoints
	}
	now := e.now()
	c := Challenge{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Reward:      reward,
		StartsAt:    now,
		EndsAt:      now.Add(ChallengeDuration),
	}
	e.mu.Lock()
	e.challenges[c.ID] = c
	e.mu.Unlock()
	return c, nil
}

func (e *Engine) Challenge(id string) (Challenge, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.challenges[id]
	return c, ok
}

// Challenges returns the open challenges ordered by start time.
func (e *Engine) Challenges() []Challenge {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	out := make([]Challenge, 0, len(e.challenges))
	for _, c := range e.challenges {
		if now.Before(c.EndsAt) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b Challenge) int {
		return cmp.Or(a.StartsAt.Compare(b.StartsAt), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// JoinChallenge reports false when the challenge is unknown or closed.
func (e *Engine) JoinChallenge(userID, challengeID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.challenges[challengeID]
	if !ok || !e.now().Before(c.EndsAt) {
		return false
	}
	r := e.load(userID)
	if !slices.Contains(r.Joined, challengeID) {
		r.Joined = append(r.Joined, challengeID)
	}
	e.store.Put(r)
	return true
}

// CompleteChallenge credits the challenge reward and returns it. It returns
// 0 and changes nothing unless the user joined the challenge, the challenge
// is still open and the user has not completed it before.
func (e *Engine) CompleteChallenge(userID, challengeID string) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.challenges[challengeID]
	if !ok || !e.now().Before(c.EndsAt) {
		return 0
	}
	r, ok := e.store.Get(userID)
	if !ok || !slices.Contains(r.Joined, challengeID) || slices.Contains(r.Completed, challengeID) {
		return 0
	}
	r.ChallengesCompleted++
	r.Completed = append(r.Completed, challengeID)
	e.store.Put(r)
	e.addPoints(userID, c.Reward)
	return c.Reward
}

// Progress returns the record of userID.
func (e *Engine) Progress(userID string) (Record, bool) {
	return e.store.Get(userID)
}

// Forget removes all progress of userID.
func (e *Engine) Forget(userID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.store.Delete(userID) {
		return ErrNotFound
	}
	return nil
}

// ranked returns every record ordered by points, ties in registration order.
func (e *Engine) ranked() []Record {
	recs := e.store.All()
	slices.SortStableFunc(recs, func(a, b Record) int {
		return cmp.Compare(b.TotalPoints, a.TotalPoints)
	})
	return recs
}

// Leaderboard yields at most limit standings. Each iteration works on a
// fresh snapshot, so the sequence can be ranged over more than once.
func (e *Engine) Leaderboard(limit int) iter.Seq[Standing] {
	return func(yield func(Standing) bool) {
		if limit <= 0 {
			return
		}
		e.mu.Lock()
		recs := e.ranked()
		e.mu.Unlock()
		for i, r := range recs {
			if i == limit {
				return
			}
			s := Standing{
				Rank:        i + 1,
				UserID:      r.UserID,
				TotalPoints: r.TotalPoints,
				Level:       r.Level(),
				BadgeCount:  len(r.Badges),
			}
			if !yield(s) {
				return
			}
		}
	}
}

// Rank returns the 1-based leaderboard position of userID, or 0.
func (e *Engine) Rank(userID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, r := range e.ranked() {
		if r.UserID == userID {
			return i + 1
		}
	}
	return 0
}
