package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ranking Prometheus metrics.
var (
	CandidatesScored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matchd",
			Name:      "ranking_candidates_scored_total",
			Help:      "Total number of candidates scored, by ranking pipeline",
		},
		[]string{"pipeline"}, // "partner" / "post"
	)

	RankingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "matchd",
			Name:      "ranking_request_duration_seconds",
			Help:      "Ranking request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"pipeline"},
	)
)

var rankingMetricsRegistered bool

// RegisterRankingMetrics registers Prometheus ranking metrics. Must be called once from main.
func RegisterRankingMetrics() {
	if rankingMetricsRegistered {
		return
	}
	prometheus.MustRegister(CandidatesScored)
	prometheus.MustRegister(RankingRequestDuration)
	rankingMetricsRegistered = true
}
