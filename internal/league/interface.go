package league

import "context"

// Store is what the result recorder needs from persistence.
type Store interface {
	GetMatch(ctx context.Context, matchID string) (*Match, error)
	HasResult(ctx context.Context, matchID string) (bool, error)
	// WithTx runs fn in one transaction. It commits when fn returns nil and
	// rolls back on an error or a panic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx holds the writes of one result recording.
type Tx interface {
	StatisticsTx
	HasResult(ctx context.Context, matchID string) (bool, error)
	ListRegistrations(ctx context.Context, matchID string) ([]Registration, error)
	InsertResult(ctx context.Context, result *MatchResult) error
	InsertSetScores(ctx context.Context, resultID string, sets []SetScore) error
}

// Reader serves the read-only ranking and statistics queries.
type Reader interface {
	GetPlayer(ctx context.Context, playerID string) (*Player, error)
	ListStandings(ctx context.Context, leagueCode string) ([]PlayerStatistic, error)
	GetPlayerStatistic(ctx context.Context, leagueCode, playerID string) (*PlayerStatistic, error)
	GetLeagueSummary(ctx context.Context, leagueCode string) (*LeagueSummary, error)
	ListRatingHistory(ctx context.Context, leagueCode, playerID string, limit int) ([]RatingHistoryEntry, error)
	// ListPlayerMatches returns recorded matches the player took part in, newest first. limit <= 0 means all.
	ListPlayerMatches(ctx context.Context, leagueCode, playerID string, limit int) ([]RecordedMatch, error)
	ListRecentMatches(ctx context.Context, leagueCode string, limit int) ([]RecordedMatch, error)
	ListPendingMatches(ctx context.Context, playerID string) ([]RecordedMatch, error)
}

// Repository is the SQL implementation of both Store and Reader.
type Repository interface {
	Store
	Reader
}
