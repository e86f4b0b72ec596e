package league

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStats is an in-memory StatisticsTx.
type memoryStats struct {
	stats   map[string]*Statistic
	history []RatingHistoryEntry
	saveErr error
}

func newMemoryStats() *memoryStats {
	return &memoryStats{stats: map[string]*Statistic{}}
}

func (m *memoryStats) GetStatistic(_ context.Context, playerID, leagueCode string) (*Statistic, error) {
	s, ok := m.stats[playerID+"/"+leagueCode]
	if !ok {
		return nil, ErrStatisticNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memoryStats) SaveStatistic(_ context.Context, stat *Statistic) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *stat
	m.stats[stat.PlayerID+"/"+stat.LeagueCode] = &cp
	return nil
}

func (m *memoryStats) AppendRatingHistory(_ context.Context, e *RatingHistoryEntry) error {
	e.ID = int64(len(m.history) + 1)
	m.history = append(m.history, *e)
	return nil
}

func TestNextRating(t *testing.T) {
	t.Run("win two sets to one from the seed", func(t *testing.T) {
		assert.Equal(t, 1024, NextRating(1000, true, 2, 1))
	})
	t.Run("loss one set to two", func(t *testing.T) {
		assert.Equal(t, 985, NextRating(1000, false, 1, 2))
	})
	t.Run("straight sets win", func(t *testing.T) {
		assert.Equal(t, 1026, NextRating(1000, true, 2, 0))
	})
	t.Run("never below the floor", func(t *testing.T) {
		rating := InitialRating
		for i := 0; i < 100; i++ {
			rating = NextRating(rating, false, 0, 2)
			require.GreaterOrEqual(t, rating, RatingFloor)
		}
		assert.Equal(t, RatingFloor, rating)
	})
}

func TestApplyMatchOutcome(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds a new statistic and appends history", func(t *testing.T) {
		tx := newMemoryStats()
		stat, entry, err := ApplyMatchOutcome(ctx, tx, PlayerOutcome{
			PlayerID: "p1", LeagueCode: "L1", MatchID: "m1",
			Won: true, SetsWon: 2, SetsLost: 1, PointsFor: 17, PointsAgainst: 13,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, stat.MatchesPlayed)
		assert.Equal(t, 1, stat.MatchesWon)
		assert.Equal(t, 0, stat.MatchesLost)
		assert.Equal(t, 2, stat.SetsWon)
		assert.Equal(t, 1, stat.SetsLost)
		assert.Equal(t, 17, stat.PointsFor)
		assert.Equal(t, 13, stat.PointsAgainst)
		assert.Equal(t, 1024, stat.Rating)

		require.Len(t, tx.history, 1)
		assert.Equal(t, RatingHistoryEntry{
			ID: 1, PlayerID: "p1", LeagueCode: "L1", MatchID: "m1",
			PreviousRating: 1000, NewRating: 1024, Delta: 24, Reason: ReasonMatchPlayed, CreatedAt: stat.UpdatedAt,
		}, tx.history[0])
		assert.Equal(t, int64(1), entry.ID)
	})

	t.Run("adds to an existing statistic", func(t *testing.T) {
		tx := newMemoryStats()
		tx.stats["p1/L1"] = &Statistic{PlayerID: "p1", LeagueCode: "L1", MatchesPlayed: 3, MatchesWon: 1, MatchesLost: 2, Rating: 990}

		stat, entry, err := ApplyMatchOutcome(ctx, tx, PlayerOutcome{PlayerID: "p1", LeagueCode: "L1", MatchID: "m2", SetsWon: 0, SetsLost: 2, PointsAgainst: 12})
		require.NoError(t, err)
		assert.Equal(t, 4, stat.MatchesPlayed)
		assert.Equal(t, 3, stat.MatchesLost)
		assert.Equal(t, 970, stat.Rating)
		assert.Equal(t, -20, entry.Delta)
		assert.Equal(t, "negative", entry.Trend())
	})

	t.Run("storage failures are returned", func(t *testing.T) {
		tx := newMemoryStats()
		tx.saveErr = Persistence("save statistic", errors.New("disk full"))
		_, _, err := ApplyMatchOutcome(ctx, tx, PlayerOutcome{PlayerID: "p1", LeagueCode: "L1", MatchID: "m1", Won: true})
		assert.Equal(t, KindPersistence, KindOf(err))
		assert.Empty(t, tx.history)
	})
}

func TestStatistic_DerivedFields(t *testing.T) {
	s := Statistic{MatchesPlayed: 3, MatchesWon: 2, SetsWon: 5, SetsLost: 3, PointsFor: 40, PointsAgainst: 31}
	assert.InDelta(t, 66.7, s.WinPercentage(), 0.001)
	assert.Equal(t, 2, s.SetDifferential())
	assert.Equal(t, 9, s.PointDifferential())
	assert.InDelta(t, 13.3, s.AveragePoints(), 0.001)

	var empty Statistic
	assert.Zero(t, empty.WinPercentage())
	assert.Zero(t, empty.AveragePoints())
}

func TestError_Is(t *testing.T) {
	err := invalidSetScore(2, 6, 5)
	assert.ErrorIs(t, err, ErrInvalidSetScore)
	assert.NotErrorIs(t, err, ErrMalformedSet)
	assert.Equal(t, KindPersistence, KindOf(errors.New("boom")))
	assert.Equal(t, KindForbidden, KindOf(ErrNotMatchCreator))

	wrapped := Persistence("load match", errors.New("disk I/O error"))
	assert.Equal(t, "load match: disk I/O error", wrapped.Error())
}
