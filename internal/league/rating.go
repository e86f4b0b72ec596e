package league

import (
	"context"
	"errors"
	"math"
	"time"
)

// StatisticsTx is the slice of a transaction the rating engine writes through.
type StatisticsTx interface {
	GetStatistic(ctx context.Context, playerID, leagueCode string) (*Statistic, error)
	SaveStatistic(ctx context.Context, stat *Statistic) error
	AppendRatingHistory(ctx context.Context, entry *RatingHistoryEntry) error
}

// NextRating applies a match to a rating. The expected result is fixed at
// 0.5 so opponent strength plays no part, and the result never drops below RatingFloor.
func NextRating(previous int, won bool, setsWon, setsLost int) int {
	actual := 0.0
	if won {
		actual = 1.0
	}
	delta := KFactor*(actual-ExpectedResult) + float64(setsWon*SetWonBonus) - float64(setsLost*SetLostPenalty)
	next := int(math.Round(float64(previous) + delta))
	return max(RatingFloor, next)
}

// ApplyMatchOutcome loads or seeds the player's statistic, adds the match to
// it, stores the new rating and appends the history entry describing the change.
func ApplyMatchOutcome(ctx context.Context, tx StatisticsTx, o PlayerOutcome) (*Statistic, *RatingHistoryEntry, error) {
	stat, err := tx.GetStatistic(ctx, o.PlayerID, o.LeagueCode)
	if errors.Is(err, ErrStatisticNotFound) {
		stat = NewStatistic(o.PlayerID, o.LeagueCode)
	} else if err != nil {
		return nil, nil, err
	}

	previous := stat.Rating
	stat.MatchesPlayed++
	if o.Won {
		stat.MatchesWon++
	} else {
		stat.MatchesLost++
	}
	stat.SetsWon += o.SetsWon
	stat.SetsLost += o.SetsLost
	stat.PointsFor += o.PointsFor
	stat.PointsAgainst += o.PointsAgainst
	stat.Rating = NextRating(previous, o.Won, o.SetsWon, o.SetsLost)
	stat.UpdatedAt = time.Now().UTC()

	if err := tx.SaveStatistic(ctx, stat); err != nil {
		return nil, nil, err
	}
	entry := &RatingHistoryEntry{
		PlayerID:       o.PlayerID,
		LeagueCode:     o.LeagueCode,
		MatchID:        o.MatchID,
		PreviousRating: previous,
		NewRating:      stat.Rating,
		Delta:          stat.Rating - previous,
		Reason:         ReasonMatchPlayed,
		CreatedAt:      stat.UpdatedAt,
	}
	if err := tx.AppendRatingHistory(ctx, entry); err != nil {
		return nil, nil, err
	}
	return stat, entry, nil
}

// OutcomeFor describes the match from the side of one player.
func OutcomeFor(playerID string, side Team, result *MatchResult) PlayerOutcome {
	setsWon, setsLost, pointsFor, pointsAgainst := result.For(side)
	return PlayerOutcome{
		PlayerID:      playerID,
		LeagueCode:    result.LeagueCode,
		MatchID:       result.MatchID,
		Won:           result.Winner == side,
		SetsWon:       setsWon,
		SetsLost:      setsLost,
		PointsFor:     pointsFor,
		PointsAgainst: pointsAgainst,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
