package processor

import (
	"time"

	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/metrics"
)

// Processor handles the business logic of recording match results.
type Processor struct {
	store   league.Store
	metrics metrics.Metrics
	now     func() time.Time
	newID   func() string
}
