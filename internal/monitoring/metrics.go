package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BetsPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_bets_total",
			Help: "Total bets settled, by game and result",
		},
		[]string{"game", "result"},
	)
	AmountWagered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_wagered_minor_total",
			Help: "Total amount wagered in minor units, by game",
		},
		[]string{"game"},
	)
	AmountPaidOut = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_paid_out_minor_total",
			Help: "Total amount paid out in minor units, by game",
		},
		[]string{"game"},
	)
	PendingCredits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "casino_pending_credits_total",
			Help: "Payouts that could not be credited and were parked for reconciliation",
		},
	)
)

func init() {
	prometheus.MustRegister(BetsPlaced)
	prometheus.MustRegister(AmountWagered)
	prometheus.MustRegister(AmountPaidOut)
	prometheus.MustRegister(PendingCredits)
}

// RecordRound updates the per-game counters for one settled round.
func RecordRound(game string, result string, wagered, paidOut int64) {
	BetsPlaced.WithLabelValues(game, result).Inc()
	AmountWagered.WithLabelValues(game).Add(float64(wagered))
	if paidOut > 0 {
		AmountPaidOut.WithLabelValues(game).Add(float64(paidOut))
	}
}
