package processor

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/metrics"
)

var _ Recorder = (*Processor)(nil)

// New creates a new Processor.
func New(store league.Store, metrics metrics.Metrics) *Processor {
	return &Processor{
		store:   store,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// RecordResult checks that userID may record the three sets for matchID and
// then, in a single transaction, stores the result and its sets and updates
// the statistics and rating of every player in both teams.
func (p *Processor) RecordResult(ctx context.Context, matchID, userID string, sets []league.SetInput) (*league.MatchResult, error) {
	startTime := time.Now()
	result, err := p.recordResult(ctx, matchID, userID, sets)
	p.metrics.ObserveRecordDuration(time.Since(startTime).Seconds())
	if err != nil {
		kind := league.KindOf(err)
		p.metrics.IncResultsRejected(string(kind))
		if kind == league.KindPersistence {
			log.Error("Failed to record match result", "error", err, "matchID", matchID)
		} else {
			log.Info("Match result rejected", "reason", err, "kind", kind, "matchID", matchID, "userID", userID)
		}
		return nil, err
	}
	p.metrics.IncResultsRecorded()
	p.metrics.IncRatingUpdates(len(result.RatingChanges))
	log.Info("Match result recorded", "matchID", matchID, "resultID", result.ID, "winner", result.Winner, "sets", result.SetsLine)
	return result, nil
}

func (p *Processor) recordResult(ctx context.Context, matchID, userID string, inputs []league.SetInput) (*league.MatchResult, error) {
	match, err := p.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.IsLeague() {
		return nil, league.ErrNotLeagueMatch
	}
	if match.CreatorID != userID {
		return nil, league.ErrNotMatchCreator
	}
	if match.Status != league.MatchFinished {
		return nil, league.ErrMatchNotFinished
	}
	exists, err := p.store.HasResult(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, league.ErrResultAlreadyRecorded
	}
	sets, err := league.ParseSets(inputs)
	if err != nil {
		return nil, err
	}

	var result *league.MatchResult
	err = p.store.WithTx(ctx, func(tx league.Tx) error {
		// another request may have recorded the match since the check above
		exists, err := tx.HasResult(ctx, matchID)
		if err != nil {
			return err
		}
		if exists {
			return league.ErrResultAlreadyRecorded
		}

		outcome, err := league.CalculateOutcome(sets)
		if err != nil {
			return err
		}
		regs, err := tx.ListRegistrations(ctx, matchID)
		if err != nil {
			return err
		}
		teams, err := league.ResolveTeams(regs)
		if err != nil {
			return err
		}

		r := league.NewMatchResult(p.newID(), match, outcome, sets, p.now())
		if err := tx.InsertResult(ctx, r); err != nil {
			return err
		}
		if err := tx.InsertSetScores(ctx, r.ID, sets); err != nil {
			return err
		}
		for _, side := range []league.Team{league.TeamA, league.TeamB} {
			for _, player := range teams.Players(side) {
				_, entry, err := league.ApplyMatchOutcome(ctx, tx, league.OutcomeFor(player.ID, side, r))
				if err != nil {
					return err
				}
				r.RatingChanges = append(r.RatingChanges, *entry)
			}
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
