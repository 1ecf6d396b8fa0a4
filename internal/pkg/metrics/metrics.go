// Package metrics exposes Prometheus instruments for attendance activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PunchTotal counts created punch records by kind and resulting status.
	PunchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_punch_total",
			Help: "Total number of punch records created",
		},
		[]string{"kind", "status"},
	)

	// ReviewTotal counts accepted and rejected requests.
	ReviewTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_review_total",
			Help: "Total number of reviewed attendance requests",
		},
		[]string{"kind", "decision"},
	)

	// PunchDistance tracks how far from the office users punch.
	PunchDistance = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "attendance_punch_distance_meters",
			Help:    "Distance between the punch location and the office in meters",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 5000, 25000},
		},
		[]string{"kind"},
	)
)

// RecordPunch records one created punch.
func RecordPunch(kind, status string, distance float64) {
	PunchTotal.WithLabelValues(kind, status).Inc()
	PunchDistance.WithLabelValues(kind).Observe(distance)
}

// RecordReview records an accept or reject decision.
func RecordReview(kind, decision string) {
	ReviewTotal.WithLabelValues(kind, decision).Inc()
}

// NewStreamGauge reports the number of open event streams as returned by count.
func NewStreamGauge(count func() int) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "attendance_event_streams",
			Help: "Number of open server-sent event streams",
		},
		func() float64 { return float64(count()) },
	)
}
