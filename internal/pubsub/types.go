package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventResultRecorded EventType = "league-result-recorded"
)

// ResultRecorded is published once a match result has been committed.
type ResultRecorded struct {
	MatchID       string         `msgpack:"match_id"`
	ResultID      string         `msgpack:"result_id"`
	LeagueCode    string         `msgpack:"league_code"`
	WinningTeam   string         `msgpack:"winning_team"`
	Sets          []string       `msgpack:"sets"`
	RecordedBy    string         `msgpack:"recorded_by"`
	RatingChanges []RatingChange `msgpack:"rating_changes"`
	RecordedAt    int64          `msgpack:"recorded_at"`
}

type RatingChange struct {
	PlayerID       string `msgpack:"player_id"`
	PreviousRating int    `msgpack:"previous_rating"`
	NewRating      int    `msgpack:"new_rating"`
}
