package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the service.
type Metrics struct {
	Verifications  *prometheus.CounterVec
	CallsInitiated prometheus.Counter
	CallsEnded     prometheus.Counter
	StatusQueries  *prometheus.CounterVec
	TokensIssued   prometheus.Counter
	Payments       *prometheus.CounterVec
	RoomAPILatency *prometheus.HistogramVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "verifications_total",
				Help:      "Account verification attempts by outcome.",
			}, []string{"outcome"}),
			CallsInitiated: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calls_initiated_total",
				Help:      "Call sessions successfully initiated.",
			}),
			CallsEnded: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calls_ended_total",
				Help:      "Call sessions explicitly torn down.",
			}),
			StatusQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "status_queries_total",
				Help:      "Room status polls by derived status.",
			}, []string{"status"}),
			TokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tokens_issued_total",
				Help:      "Participant room credentials minted.",
			}),
			Payments: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_total",
				Help:      "Simulated payment submissions by method.",
			}, []string{"method"}),
			RoomAPILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "room_api_duration_seconds",
				Help:      "Latency distribution for vendor room API calls.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"method"}),
		}

		prometheus.MustRegister(
			metricsInstance.Verifications,
			metricsInstance.CallsInitiated,
			metricsInstance.CallsEnded,
			metricsInstance.StatusQueries,
			metricsInstance.TokensIssued,
			metricsInstance.Payments,
			metricsInstance.RoomAPILatency,
		)
	})
	return metricsInstance
}
