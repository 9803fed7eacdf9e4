package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carrental",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		},
		[]string{"route", "status"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carrental",
			Name:      "bookings_created_total",
			Help:      "Bookings successfully created.",
		},
	)

	sessionsInvalidated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carrental",
			Name:      "sessions_invalidated_total",
			Help:      "Requests rejected with an invalid or expired token.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, sessionsInvalidated)
	})
}

// IncHTTP increments the request counter for a route/status pair.
func IncHTTP(route, status string) {
	httpRequests.WithLabelValues(route, status).Inc()
}

// IncBookingCreated counts a successfully created booking.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncSessionInvalidated counts an invalid-token rejection.
func IncSessionInvalidated() {
	sessionsInvalidated.Inc()
}
