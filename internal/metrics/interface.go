package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncResultsRecorded()
	IncResultsRejected(kind string)
	ObserveRecordDuration(seconds float64)
	IncRatingUpdates(n int)
	IncEventsPublished()
	IncEventsFailed()
	SetStartupTime(duration float64)
}
