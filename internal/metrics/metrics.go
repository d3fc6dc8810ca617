package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_roast_cache_operations_total",
			Help: "Cache operations by operation and result",
		}, []string{"op", "result"})

	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_roast_provider_requests_total",
			Help: "Live requests sent to the profile data provider",
		}, []string{"endpoint", "result"})

	CompletionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_roast_completion_seconds",
			Help:    "Histogram of chat completion latency",
			Buckets: prometheus.DefBuckets,
		})

	CompletionFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_roast_completion_failures_total",
			Help: "Chat completions that failed or returned no choice",
		})

	Analyses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_roast_analyses_total",
			Help: "Analyzer runs by outcome",
		}, []string{"result"})
)

// Setup registers all collectors with reg.
func Setup(reg prometheus.Registerer) {
	reg.MustRegister(CacheOperations)
	reg.MustRegister(ProviderRequests)
	reg.MustRegister(CompletionDuration)
	reg.MustRegister(CompletionFailures)
	reg.MustRegister(Analyses)
}
