package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu              sync.Mutex
	resultsRecorded int
	resultsRejected map[string]int
	recordDurations []float64
	ratingUpdates   int
	eventsPublished int
	eventsFailed    int
	startupTime     float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		resultsRejected: make(map[string]int),
		recordDurations: make([]float64, 0),
	}
}

func (m *Mock) IncResultsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsRecorded++
}

func (m *Mock) IncResultsRejected(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsRejected[kind]++
}

func (m *Mock) ObserveRecordDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordDurations = append(m.recordDurations, seconds)
}

func (m *Mock) IncRatingUpdates(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratingUpdates += n
}

func (m *Mock) IncEventsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished++
}

func (m *Mock) IncEventsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// ResultsRecorded returns the number of times IncResultsRecorded was called.
func (m *Mock) ResultsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsRecorded
}

// ResultsRejected returns how many rejections were counted for kind.
func (m *Mock) ResultsRejected(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsRejected[kind]
}

// RecordDurations returns a copy of the observed durations.
func (m *Mock) RecordDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.recordDurations...)
}

// RatingUpdates returns the total passed to IncRatingUpdates.
func (m *Mock) RatingUpdates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ratingUpdates
}

// EventsPublished returns the number of times IncEventsPublished was called.
func (m *Mock) EventsPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished
}

// EventsFailed returns the number of times IncEventsFailed was called.
func (m *Mock) EventsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsFailed
}
