package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	ResultsRecorded    prometheus.Counter
	ResultsRejected    *prometheus.CounterVec
	RecordDuration     prometheus.Histogram
	RatingUpdates      prometheus.Counter
	EventsPublished    prometheus.Counter
	EventsFailed       prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
