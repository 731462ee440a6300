package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		retrievalDocsMatched,
		retrievalDegraded,
	)
}

var (
	retrievalDocsMatched = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "retrieval_docs_matched",
			Help:    "Documents matched per knowledge base lookup.",
			Buckets: []float64{0, 1, 2, 3, 5},
		},
	)

	retrievalDegraded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "retrieval_degraded_total",
			Help: "Lookups that failed and were downgraded to empty context.",
		},
	)
)

func ObserveRetrieval(docs int) {
	retrievalDocsMatched.Observe(float64(docs))
}

func IncRetrievalDegraded() {
	retrievalDegraded.Inc()
}
