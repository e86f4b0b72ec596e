package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mauv0809/padel-league/internal/auth"
	"github.com/mauv0809/padel-league/internal/club"
	"github.com/mauv0809/padel-league/internal/config"
	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/metrics"
	"github.com/mauv0809/padel-league/internal/processor"
	"github.com/mauv0809/padel-league/internal/pubsub"
)

func NewServer(store club.ClubStore, recorder processor.Recorder, queries *league.Queries, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Recorder:       recorder,
		Queries:        queries,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         chi.NewRouter(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.Cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.With(paramsMiddleware).Get("/health", s.HealthCheckHandler())

	s.Router.Group(func(r chi.Router) {
		r.Use(paramsMiddleware)
		r.Use(auth.Middleware(s.Cfg.JWTSecret, func(w http.ResponseWriter, err error) {
			writeMessage(w, http.StatusUnauthorized, "unauthorized")
		}))

		r.Get("/profile", s.GetProfileHandler())
		r.Patch("/profile", s.UpdateProfileHandler())

		r.Get("/matches/pending-results", s.PendingResultsHandler())
		r.Post("/matches/{id}/results", s.RecordResultHandler())

		r.Route("/leagues/{code}", func(r chi.Router) {
			r.Get("/ranking", s.RankingHandler())
			r.Get("/statistics", s.PlayerStatisticsHandler())
			r.Get("/statistics/{playerId}", s.PlayerStatisticsHandler())
			r.Get("/recent-results", s.RecentResultsHandler())
		})
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
