package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slate_queries_total",
			Help: "Total number of dataset queries by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	FieldUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slate_field_updates_total",
			Help: "Total number of version field writes by field and outcome.",
		},
		[]string{"field", "outcome"},
	)

	NotificationsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slate_notifications_published_total",
			Help: "Total number of events published on the bus by type.",
		},
		[]string{"event_type"},
	)

	NotificationsDroppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slate_notifications_dropped_total",
			Help: "Total number of events dropped because a subscriber's buffer was full.",
		},
		[]string{"event_type"},
	)

	NotificationsEmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slate_notifications_emitted_total",
			Help: "Total number of events forwarded to the host sink by transport and status.",
		},
		[]string{"transport", "status"},
	)

	NotificationEmitDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slate_notification_emit_duration_seconds",
			Help:    "Duration of host sink deliveries in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"transport"},
	)

	TimelinesBuiltTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slate_timelines_built_total",
			Help: "Total number of timeline documents built by source.",
		},
		[]string{"source"},
	)

	DatasetVersions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "slate_dataset_versions",
			Help: "Number of version records in the loaded dataset.",
		},
	)
)

// All lists every slate collector.
func All() []prometheus.Collector {
	return []prometheus.Collector{
		QueriesTotal,
		FieldUpdatesTotal,
		NotificationsPublishedTotal,
		NotificationsDroppedTotal,
		NotificationsEmittedTotal,
		NotificationEmitDuration,
		TimelinesBuiltTotal,
		DatasetVersions,
	}
}

// Register registers all slate metrics with the default Prometheus
// registry. Repeated calls are no-ops.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(All()...)
	})
}
