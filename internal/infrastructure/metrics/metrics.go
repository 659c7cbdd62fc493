package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hr_assistant",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hr_assistant",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Completion calls, labelled by purpose ("answer" or "subject").
	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hr_assistant",
			Subsystem: "api",
			Name:      "completion_duration_seconds",
			Help:      "Completion API call duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model", "purpose"},
	)

	CompletionErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hr_assistant",
			Subsystem: "api",
			Name:      "completion_errors_total",
			Help:      "Total completion API call failures",
		},
		[]string{"model", "purpose", "reason"},
	)

	TokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hr_assistant",
			Subsystem: "api",
			Name:      "tokens_total",
			Help:      "Tokens reported by the completion API",
		},
		[]string{"model", "type"},
	)

	DialogsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hr_assistant",
			Subsystem: "api",
			Name:      "dialogs_created_total",
			Help:      "Total dialogs created",
		},
	)

	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hr_assistant",
			Subsystem: "api",
			Name:      "auth_requests_total",
			Help:      "Total authentication requests",
		},
		[]string{"action", "status"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordCompletion records a completion call duration
func RecordCompletion(model, purpose string, durationSec float64) {
	CompletionDuration.WithLabelValues(model, purpose).Observe(durationSec)
}

// RecordCompletionError records a failed completion call
func RecordCompletionError(model, purpose, reason string) {
	if reason == "" {
		reason = "unknown"
	}
	CompletionErrorsTotal.WithLabelValues(model, purpose, reason).Inc()
}

// RecordTokens records token usage of a completion call
func RecordTokens(model string, promptTokens, completionTokens int) {
	TokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	TokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
}

func RecordDialogCreated() {
	DialogsCreatedTotal.Inc()
}

// RecordAuth records a register/login/token outcome
func RecordAuth(action, status string) {
	AuthRequestsTotal.WithLabelValues(action, status).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
