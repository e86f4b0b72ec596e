package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		ResultsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_league_results_recorded_total",
			Help: "The total number of match results recorded.",
		}),
		ResultsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "padel_league_results_rejected_total",
			Help: "The total number of result submissions rejected, by error kind.",
		}, []string{"kind"}),
		RecordDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_league_record_duration_seconds",
			Help:    "The duration of a result recording, including the transaction.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RatingUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_league_rating_updates_total",
			Help: "The total number of player ratings updated.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_league_events_published_total",
			Help: "The total number of result events published.",
		}),
		EventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_league_events_failed_total",
			Help: "The total number of result events that failed to publish.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_league_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.ResultsRecorded,
		s.ResultsRejected,
		s.RecordDuration,
		s.RatingUpdates,
		s.EventsPublished,
		s.EventsFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncResultsRecorded() {
	s.ResultsRecorded.Inc()
}

func (s *Service) IncResultsRejected(kind string) {
	s.ResultsRejected.WithLabelValues(kind).Inc()
}

func (s *Service) ObserveRecordDuration(seconds float64) {
	s.RecordDuration.Observe(seconds)
}

func (s *Service) IncRatingUpdates(n int) {
	s.RatingUpdates.Add(float64(n))
}

func (s *Service) IncEventsPublished() {
	s.EventsPublished.Inc()
}

func (s *Service) IncEventsFailed() {
	s.EventsFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
