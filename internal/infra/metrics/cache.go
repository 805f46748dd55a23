package metrics

import "github.com/prometheus/client_golang/prometheus"

var cacheRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_requests_total",
		Help: "Cache lookups by object kind and result (hit/miss).",
	},
	[]string{"kind", "result"},
)

func init() {
	register(cacheRequests)
}

func IncCacheRequest(kind, result string) {
	cacheRequests.WithLabelValues(norm(kind), norm(result)).Inc()
}
