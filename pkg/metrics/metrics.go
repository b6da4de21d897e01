package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CheckoutMetrics struct {
	Activations   *prometheus.CounterVec
	StageFailures *prometheus.CounterVec
	DurationMS    *prometheus.HistogramVec
}

func NewCheckoutMetrics() *CheckoutMetrics {
	activations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookstore",
		Subsystem: "checkout",
		Name:      "activations_total",
		Help:      "Total number of checkout and confirmation activations.",
	}, []string{"flow", "outcome"})
	stageFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookstore",
		Subsystem: "checkout",
		Name:      "stage_failures_total",
		Help:      "Activation failures by stage.",
	}, []string{"stage"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bookstore",
		Subsystem: "checkout",
		Name:      "flow_duration_ms",
		Help:      "End-to-end activation latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"flow"})

	prometheus.MustRegister(activations, stageFailures, duration)
	return &CheckoutMetrics{Activations: activations, StageFailures: stageFailures, DurationMS: duration}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
