package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bankcore_transfers_total",
		Help: "Transfer attempts by terminal outcome",
	}, []string{"outcome"})

	transferDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bankcore_transfer_duration_seconds",
		Help:    "End-to-end transfer latency including authorizer round trip",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})

	notificationsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bankcore_notifications_dropped_total",
		Help: "Notifications discarded because the dispatch queue was full",
	})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bankcore_http_requests_total",
		Help: "HTTP requests processed, labeled by method, route and status",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bankcore_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"})
)

func ObserveTransfer(outcome string, start time.Time) {
	transfersTotal.WithLabelValues(outcome).Inc()
	transferDuration.Observe(time.Since(start).Seconds())
}

func NotificationDropped() {
	notificationsDropped.Inc()
}

func ObserveHTTPRequest(method, route string, status string, start time.Time) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
