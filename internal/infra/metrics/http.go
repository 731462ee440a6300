package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(httpRequests, httpLatencyMs)
}

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by path and status code.",
		},
		[]string{"path", "status"},
	)

	httpLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_latency_ms",
			Help:    "HTTP request latency in milliseconds.",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 15000, 60000, 150000},
		},
		[]string{"path"},
	)
)

func ObserveHTTPRequest(path string, status int, latencyMs int) {
	httpRequests.WithLabelValues(path, strconv.Itoa(status)).Inc()
	httpLatencyMs.WithLabelValues(path).Observe(float64(latencyMs))
}
