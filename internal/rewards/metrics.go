package rewards

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	giftsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rewards_gifts_sent_total",
			Help: "Number of gifts sent, by gift id.",
		},
		[]string{"gift"},
	)
	pointsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rewards_points_awarded_total",
			Help: "Engagement points awarded, by activity.",
		},
		[]string{"activity"},
	)
	badgesAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rewards_badges_awarded_total",
			Help: "Number of badges awarded.",
		},
	)
	suspiciousActivity = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rewards_suspicious_activity_total",
			Help: "Operations refused by the fraud guard.",
		},
		[]string{"activity"},
	)
)
