package league

import (
	"encoding/json"
	"fmt"
	"time"
)

// Team identifies one side of a doubles match.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// Opponent returns the other side.
func (t Team) Opponent() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchConfirmed MatchStatus = "confirmed"
	MatchFinished  MatchStatus = "finished"
	MatchCancelled MatchStatus = "cancelled"
)

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

const (
	SetsPerMatch      = 3
	InitialRating     = 1000
	RatingFloor       = 100
	KFactor           = 32.0
	ExpectedResult    = 0.5
	SetWonBonus       = 5
	SetLostPenalty    = 2
	ReasonMatchPlayed = "match_played"
)

// Match is the part of a scheduled game the league core needs.
type Match struct {
	ID         string      `json:"id"`
	LeagueCode string      `json:"leagueCode,omitempty"`
	Status     MatchStatus `json:"status"`
	CreatorID  string      `json:"creatorId"`
	Court      string      `json:"court"`
	PlayedAt   time.Time   `json:"playedAt"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// IsLeague reports whether the match belongs to a league.
func (m Match) IsLeague() bool {
	return m.LeagueCode != ""
}

// Player is the public profile shown next to standings and rosters.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Category   string `json:"category,omitempty"`
	ImagePath  string `json:"imagePath,omitempty"`
	LeagueCode string `json:"leagueCode,omitempty"`
}

// Registration links a player to a match. ID is the insertion order.
type Registration struct {
	ID        int64              `json:"id"`
	MatchID   string             `json:"matchId"`
	PlayerID  string             `json:"playerId"`
	Status    RegistrationStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	Player    Player             `json:"player"`
}

// SetInput is a set as submitted by a client. Nil points mean the field was
// missing or not an integer.
type SetInput struct {
	PointsTeamA *int `json:"pointsTeamA"`
	PointsTeamB *int `json:"pointsTeamB"`
}

// UnmarshalJSON never fails: a set that is not an object, or points of the
// wrong type, decode as missing so ParseSets reports the set by index.
func (s *SetInput) UnmarshalJSON(data []byte) error {
	*s = SetInput{}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	s.PointsTeamA = intField(raw["pointsTeamA"])
	s.PointsTeamB = intField(raw["pointsTeamB"])
	return nil
}

// DecodeSets reads a "sets" value leniently. Anything that is not an array
// decodes as no sets.
func DecodeSets(data json.RawMessage) []SetInput {
	var sets []SetInput
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil
	}
	return sets
}

func intField(v json.RawMessage) *int {
	if len(v) == 0 {
		return nil
	}
	var n int
	if err := json.Unmarshal(v, &n); err != nil {
		return nil
	}
	return &n
}

// SetScore is one validated set.
type SetScore struct {
	Number  int `json:"number"`
	PointsA int `json:"pointsTeamA"`
	PointsB int `json:"pointsTeamB"`
}

func (s SetScore) String() string {
	return fmt.Sprintf("%d-%d", s.PointsA, s.PointsB)
}

// MarshalJSON adds the "6-2" style score line.
func (s SetScore) MarshalJSON() ([]byte, error) {
	type alias SetScore
	return json.Marshal(struct {
		alias
		Score string `json:"score"`
	}{alias(s), s.String()})
}

// Outcome is the aggregate of the three sets of a match.
type Outcome struct {
	SetsWonA int  `json:"setsWonTeamA"`
	SetsWonB int  `json:"setsWonTeamB"`
	PointsA  int  `json:"pointsTeamA"`
	PointsB  int  `json:"pointsTeamB"`
	Winner   Team `json:"winningTeam"`
}

// SetsLine renders sets won as "2-1" from team A's point of view.
func (o Outcome) SetsLine() string {
	return fmt.Sprintf("%d-%d", o.SetsWonA, o.SetsWonB)
}

// For returns the sets and points of one side, own first.
func (o Outcome) For(t Team) (setsWon, setsLost, pointsFor, pointsAgainst int) {
	if t == TeamA {
		return o.SetsWonA, o.SetsWonB, o.PointsA, o.PointsB
	}
	return o.SetsWonB, o.SetsWonA, o.PointsB, o.PointsA
}

// MatchResult is the recorded, immutable result of a league match.
type MatchResult struct {
	ID         string `json:"id"`
	MatchID    string `json:"matchId"`
	LeagueCode string `json:"leagueCode"`
	Outcome
	SetsLine      string               `json:"setsLine"`
	Sets          []SetScore           `json:"sets"`
	CreatedAt     time.Time            `json:"createdAt"`
	RatingChanges []RatingHistoryEntry `json:"ratingChanges,omitempty"`
}

// NewMatchResult builds the result row for a match from its computed outcome.
func NewMatchResult(id string, match *Match, outcome Outcome, sets []SetScore, now time.Time) *MatchResult {
	return &MatchResult{
		ID:         id,
		MatchID:    match.ID,
		LeagueCode: match.LeagueCode,
		Outcome:    outcome,
		SetsLine:   outcome.SetsLine(),
		Sets:       sets,
		CreatedAt:  now,
	}
}

// Statistic is the cumulative record of one player in one league.
type Statistic struct {
	PlayerID      string    `json:"playerId"`
	LeagueCode    string    `json:"leagueCode"`
	MatchesPlayed int       `json:"matchesPlayed"`
	MatchesWon    int       `json:"matchesWon"`
	MatchesLost   int       `json:"matchesLost"`
	SetsWon       int       `json:"setsWon"`
	SetsLost      int       `json:"setsLost"`
	PointsFor     int       `json:"pointsFor"`
	PointsAgainst int       `json:"pointsAgainst"`
	Rating        int       `json:"rating"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewStatistic seeds the record a player gets on their first league match.
func NewStatistic(playerID, leagueCode string) *Statistic {
	return &Statistic{
		PlayerID:   playerID,
		LeagueCode: leagueCode,
		Rating:     InitialRating,
	}
}

// WinPercentage is rounded to one decimal.
func (s Statistic) WinPercentage() float64 {
	if s.MatchesPlayed == 0 {
		return 0
	}
	return round1(float64(s.MatchesWon) * 100 / float64(s.MatchesPlayed))
}

func (s Statistic) SetDifferential() int {
	return s.SetsWon - s.SetsLost
}

func (s Statistic) PointDifferential() int {
	return s.PointsFor - s.PointsAgainst
}

// AveragePoints is points scored per match played, rounded to one decimal.
func (s Statistic) AveragePoints() float64 {
	if s.MatchesPlayed == 0 {
		return 0
	}
	return round1(float64(s.PointsFor) / float64(s.MatchesPlayed))
}

// PlayerOutcome is what the rating engine needs to know about one player's match.
type PlayerOutcome struct {
	PlayerID      string
	LeagueCode    string
	MatchID       string
	Won           bool
	SetsWon       int
	SetsLost      int
	PointsFor     int
	PointsAgainst int
}

// RatingHistoryEntry is an append-only record of one rating change.
type RatingHistoryEntry struct {
	ID             int64     `json:"id"`
	PlayerID       string    `json:"playerId"`
	LeagueCode     string    `json:"leagueCode"`
	MatchID        string    `json:"matchId"`
	PreviousRating int       `json:"previousRating"`
	NewRating      int       `json:"newRating"`
	Delta          int       `json:"delta"`
	Reason         string    `json:"reason"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Trend labels a change for display; no change counts as positive.
func (e RatingHistoryEntry) Trend() string {
	if e.Delta >= 0 {
		return "positive"
	}
	return "negative"
}

// PlayerStatistic joins a statistic row with the player's profile.
type PlayerStatistic struct {
	Player    Player
	Statistic Statistic
}

// RecordedMatch is a match together with its roster and, when present, its result.
type RecordedMatch struct {
	Match         Match
	Result        *MatchResult
	Registrations []Registration
}

// LeagueSummary describes the activity of a league.
type LeagueSummary struct {
	Code            string     `json:"code"`
	FinishedMatches int        `json:"finishedMatches"`
	Players         int        `json:"players"`
	LastMatchAt     *time.Time `json:"lastMatchAt"`
}
