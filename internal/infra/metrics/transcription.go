package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		transcriptionJobs,
		transcriptionPollAttempts,
		transcriptionLatencyMs,
	)
}

var (
	transcriptionJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcription_jobs_total",
			Help: "Transcription jobs by terminal status (done/error/timed_out).",
		},
		[]string{"status"},
	)

	transcriptionPollAttempts = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "transcription_poll_attempts",
			Help:    "Poll attempts needed to reach a terminal status.",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 30, 45, 60},
		},
	)

	transcriptionLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "transcription_latency_ms",
			Help:    "End-to-end transcription latency (upload to transcript) in milliseconds.",
			Buckets: []float64{500, 1000, 2000, 5000, 10000, 30000, 60000, 120000},
		},
	)
)

func ObserveTranscription(status string, pollAttempts int, latencyMs int) {
	transcriptionJobs.WithLabelValues(norm(status)).Inc()
	transcriptionPollAttempts.Observe(float64(pollAttempts))
	transcriptionLatencyMs.Observe(float64(latencyMs))
}
