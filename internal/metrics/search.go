package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search engine Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "skyseek",
			Name:      "searches_total",
			Help:      "Total number of searches performed",
		},
		[]string{"mode"},
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "skyseek",
			Name:      "result_cache_total",
			Help:      "Result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SourceFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "skyseek",
			Name:      "source_failures_total",
			Help:      "Remote source failures and timeouts",
		},
		[]string{"source"},
	)

	OnlineSearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "skyseek",
			Name:      "online_search_duration_seconds",
			Help:      "Online fan-out duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "skyseek",
			Name:      "results_returned",
			Help:      "Result count per settled search",
			Buckets:   []float64{0, 1, 5, 10, 20, 30, 60},
		},
	)
)

func init() {
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(CacheTotal)
	prometheus.MustRegister(SourceFailuresTotal)
	prometheus.MustRegister(OnlineSearchDuration)
	prometheus.MustRegister(ResultsReturned)
}
