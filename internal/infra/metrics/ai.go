package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		aiTokensIn,
		aiTokensOut,
		aiTokensTotal,
		aiCallsLatencyMs,
	)
}

var (
	aiTokensIn = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_tokens_in",
			Help: "Sum of prompt (input) tokens per model.",
		},
		[]string{"model"},
	)

	aiTokensOut = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_tokens_out",
			Help: "Sum of completion (output) tokens per model.",
		},
		[]string{"model"},
	)

	aiTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_tokens_total",
			Help: "Sum of total tokens per model.",
		},
		[]string{"model"},
	)

	aiCallsLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_calls_latency_ms",
			Help:    "AI call latency distribution in milliseconds.",
			Buckets: []float64{100, 250, 500, 1000, 2000, 4000, 8000, 16000, 30000, 60000},
		},
		[]string{"model", "success"},
	)
)

func ObserveChatUsage(model string, tokensIn, tokensOut, tokensTotal int, latencyMs int, success bool) {
	aiTokensIn.WithLabelValues(norm(model)).Add(float64(tokensIn))
	aiTokensOut.WithLabelValues(norm(model)).Add(float64(tokensOut))
	aiTokensTotal.WithLabelValues(norm(model)).Add(float64(tokensTotal))
	aiCallsLatencyMs.WithLabelValues(norm(model), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}
