package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "meetspace"

var (
	once sync.Once

	meetingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meeting_created_total",
			Help:      "Count of meetings booked.",
		},
	)

	meetingStatusChanged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meeting_status_changed_total",
			Help:      "Count of meeting status transitions by target status.",
		},
		[]string{"status"},
	)

	schedulingConflict = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduling_conflict_total",
			Help:      "Count of booking attempts rejected because the room was taken.",
		},
		[]string{"operation"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by route pattern.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "code"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(meetingCreated, meetingStatusChanged, schedulingConflict, httpDuration)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func IncMeetingCreated() {
	meetingCreated.Inc()
}

func IncMeetingStatusChanged(status string) {
	meetingStatusChanged.WithLabelValues(status).Inc()
}

func IncSchedulingConflict(operation string) {
	schedulingConflict.WithLabelValues(operation).Inc()
}

func ObserveHTTPRequest(method, route string, code int, elapsed time.Duration) {
	httpDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}
