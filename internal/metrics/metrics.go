package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BookingOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_booking_outcomes_total",
			Help: "Schedule requests by outcome.",
		},
		[]string{"outcome"},
	)
	ExternalAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_external_attempts_total",
			Help: "Calls to the booking provider by operation and result.",
		},
		[]string{"operation", "result"},
	)
	ExternalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scheduler_external_duration_seconds",
			Help:    "Booking provider call latency including retries.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)
	RankingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scheduler_ranking_duration_seconds",
			Help:    "Duration of one candidate ranking pass.",
			Buckets: prometheus.DefBuckets,
		},
	)
	StaleExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_stale_interviews_expired_total",
			Help: "Interviews moved to failed after exceeding the pending lifetime.",
		},
	)
)

// Outcome labels for BookingOutcomes.
const (
	OutcomeConfirmed = "confirmed"
	OutcomeConflict  = "conflict"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
	OutcomeAbandoned = "abandoned"
	OutcomeInvalid   = "invalid"
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			BookingOutcomes,
			ExternalAttempts,
			ExternalDuration,
			RankingDuration,
			StaleExpired,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
