package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"reels_monetization/internal/money"
)

var (
	movedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_moved_minor_units_total",
			Help: "Minor units credited or debited, per ledger",
		},
		[]string{"ledger", "direction"},
	)

	cutTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_platform_cut_minor_units_total",
			Help: "Minor units retained by the platform",
		},
		[]string{"ledger", "kind"},
	)

	rejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_insufficient_balance_total",
			Help: "Debits and transfers rejected for insufficient balance",
		},
		[]string{"ledger"},
	)
)

func observeMovement(ledger, direction string, a money.Amount) {
	movedTotal.WithLabelValues(ledger, direction).Add(float64(a))
}

func observeCut(ledger string, kind Kind, a money.Amount) {
	cutTotal.WithLabelValues(ledger, string(kind)).Add(float64(a))
}

func observeRejection(ledger string) {
	rejectedTotal.WithLabelValues(ledger).Inc()
}
