package processor

import (
	"context"

	"github.com/mauv0809/padel-league/internal/league"
)

// Recorder records league match results.
type Recorder interface {
	RecordResult(ctx context.Context, matchID, userID string, sets []league.SetInput) (*league.MatchResult, error)
}
