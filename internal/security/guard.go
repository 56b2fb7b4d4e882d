// Package security holds the fraud guard, the audit log and the privacy and
// two-factor defaults.
package security

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Activities watched by the Guard.
const (
	ActivityWithdrawal = "withdrawal"
	ActivityGift       = "gift"
	ActivityPurchase   = "purchase"
)

// Limit allows PerHour events per user with bursts of up to Burst.
type Limit struct {
	PerHour int
	Burst   int
}

// Guard flags users that act faster than their activity allows.
type Guard struct {
	mu       sync.Mutex
	limits   map[string]Limit
	limiters map[string]map[string]*rate.Limiter // activity -> user -> limiter
	now      func() time.Time
}

// NewGuard returns a guard enforcing limits. Activities without a limit are
// never flagged.
func NewGuard(limits map[string]Limit) *Guard {
	l := make(map[string]Limit, len(limits))
	for k, v := range limits {
		l[k] = v
	}
	return &Guard{
		limits:   l,
		limiters: make(map[string]map[string]*rate.Limiter),
		now:      time.Now,
	}
}

func (g *Guard) limiter(userID, activity string) *rate.Limiter {
	lim, ok := g.limits[activity]
	if !ok {
		return nil
	}
	users, ok := g.limiters[activity]
	if !ok {
		users = make(map[string]*rate.Limiter)
		g.limiters[activity] = users
	}
	l, ok := users[userID]
	if !ok {
		every := rate.Every(time.Hour / time.Duration(max(lim.PerHour, 1)))
		l = rate.NewLimiter(every, max(lim.Burst, 1))
		users[userID] = l
	}
	return l
}

// Suspicious consumes one event for userID and reports whether it exceeds
// the activity's limit.
func (g *Guard) Suspicious(userID, activity string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	l := g.limiter(userID, activity)
	if l == nil {
		return false
	}
	return !l.AllowN(g.now(), 1)
}

// Forget drops every limiter held for userID.
func (g *Guard) Forget(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, users := range g.limiters {
		delete(users, userID)
	}
}

// Cleanup drops limiters whose bucket has refilled. A fresh limiter behaves
// the same, so nothing is forgotten about users still being throttled.
func (g *Guard) Cleanup() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	dropped := 0
	for activity, users := range g.limiters {
		for userID, l := range users {
			if l.TokensAt(now) >= float64(l.Burst()) {
				delete(users, userID)
				dropped++
			}
		}
		if len(users) == 0 {
			delete(g.limiters, activity)
		}
	}
	return dropped
}

// StartCleanup runs Cleanup every interval until ctx is done.
func (g *Guard) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				g.Cleanup()
			}
		}
	}()
}
