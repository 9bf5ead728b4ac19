package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal counts search requests by envelope status.
	RequestsTotal *prometheus.CounterVec

	// FetchesTotal counts per-URL fetches by outcome (success, empty, failed).
	FetchesTotal *prometheus.CounterVec

	// FetchDuration observes per-URL processing time.
	FetchDuration prometheus.Histogram

	// SearchResults observes how many candidates a search returned.
	SearchResults prometheus.Histogram
)

func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gopages",
			Name:      "requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"status"},
	)

	FetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gopages",
			Name:      "fetch_total",
			Help:      "Total page fetches by outcome",
		},
		[]string{"outcome"},
	)

	FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gopages",
			Name:      "fetch_duration_seconds",
			Help:      "Per-URL download and extraction time in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gopages",
			Name:      "search_results",
			Help:      "Number of candidate URLs returned per search",
			Buckets:   []float64{0, 1, 2, 4, 6, 8, 10},
		},
	)

	prometheus.MustRegister(RequestsTotal, FetchesTotal, FetchDuration, SearchResults)
}

// Fetch outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeFailed  = "failed"
)

// RecordFetch records one fetch outcome and its duration.
func RecordFetch(outcome string, elapsed time.Duration) {
	FetchesTotal.WithLabelValues(outcome).Inc()
	FetchDuration.Observe(elapsed.Seconds())
}

// RecordRequest records one request by response status ("success", "error", "failed").
func RecordRequest(status string) {
	RequestsTotal.WithLabelValues(status).Inc()
}
