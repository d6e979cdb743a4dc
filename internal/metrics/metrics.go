package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pilgrimage",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by package tier.",
		},
		[]string{"tier"},
	)

	bookingStatusChanged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pilgrimage",
			Name:      "booking_status_changed_total",
			Help:      "Count of admin booking status changes by new status.",
		},
		[]string{"status"},
	)

	scheduleTransition = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pilgrimage",
			Name:      "schedule_transition_total",
			Help:      "Count of cleaning schedule status changes by source and new status.",
		},
		[]string{"source", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pilgrimage",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route and status code.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "code"},
	)
)

// Register регистрирует метрики (идемпотентно).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingStatusChanged, scheduleTransition, httpDuration)
	})
}

// IncBookingCreated учитывает новое бронирование по уровню пакета.
func IncBookingCreated(tier string) {
	bookingCreated.WithLabelValues(tier).Inc()
}

// IncBookingStatusChanged учитывает смену статуса бронирования в админке.
func IncBookingStatusChanged(status string) {
	bookingStatusChanged.WithLabelValues(status).Inc()
}

// IncScheduleTransition учитывает смену статуса уборки; source — "admin", "portal" или "bot".
func IncScheduleTransition(source, status string) {
	scheduleTransition.WithLabelValues(source, status).Inc()
}

// ObserveHTTP записывает длительность HTTP-запроса.
func ObserveHTTP(method, route, code string, seconds float64) {
	httpDuration.WithLabelValues(method, route, code).Observe(seconds)
}
