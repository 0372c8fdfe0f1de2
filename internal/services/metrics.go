package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engine-level counters, exposed on /metrics alongside the HTTP middleware
// metrics.
var (
	recommendationsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "internmatch_recommendations_served_total",
		Help: "Ranking requests served, by scoring mode.",
	}, []string{"mode"})

	feedbackEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "internmatch_feedback_events_total",
		Help: "Feedback submissions, by outcome.",
	}, []string{"outcome"})

	retrainRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "internmatch_retrain_runs_total",
		Help: "Collaborative model retrains, by outcome.",
	}, []string{"outcome"})
)

func ObserveRecommendation(mode string) {
	recommendationsServed.WithLabelValues(mode).Inc()
}

func ObserveFeedback(outcome string) {
	feedbackEvents.WithLabelValues(outcome).Inc()
}

func ObserveRetrain(outcome string) {
	retrainRuns.WithLabelValues(outcome).Inc()
}
