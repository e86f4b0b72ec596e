package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-league/internal/club"
	"github.com/mauv0809/padel-league/internal/config"
	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/metrics"
	"github.com/mauv0809/padel-league/internal/processor"
	"github.com/mauv0809/padel-league/internal/pubsub"
)

// publishTimeout bounds the wait for the broker after a result is committed.
const publishTimeout = 5 * time.Second

type Server struct {
	Store          club.ClubStore
	Recorder       processor.Recorder
	Queries        *league.Queries
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *chi.Mux
	pubsub         pubsub.PubSubClient
}

// response is the envelope of every JSON reply.
type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// recordResultRequest keeps the sets raw so type errors surface as set
// validation errors after the match checks.
type recordResultRequest struct {
	Sets json.RawMessage `json:"sets"`
}
