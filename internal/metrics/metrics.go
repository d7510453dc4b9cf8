package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copilot_errors_total",
			Help: "Logged errors and warnings by error type and level.",
		},
		[]string{"type", "level"},
	)
	LLMCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "copilot_llm_call_duration_seconds",
			Help:    "Duration of LLM calls by operation.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)
	DeepMatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "copilot_deep_match_duration_seconds",
			Help:    "Duration of the whole deep match pipeline in seconds.",
			Buckets: []float64{1, 2, 5, 10, 20, 40},
		},
	)
	JobSearchesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copilot_job_searches_total",
			Help: "Total number of job source searches by cache outcome.",
		},
		[]string{"cache"},
	)
	AlertsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copilot_alerts_total",
			Help: "Alerts handled by the dispatch job, by outcome.",
		},
		[]string{"outcome"},
	)
	StatusTransitionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copilot_application_status_transitions_total",
			Help: "Application status transitions by target status.",
		},
		[]string{"status"},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(LLMCallDuration)
		prometheus.MustRegister(DeepMatchDuration)
		prometheus.MustRegister(JobSearchesCounter)
		prometheus.MustRegister(AlertsCounter)
		prometheus.MustRegister(StatusTransitionsCounter)
	})
}
