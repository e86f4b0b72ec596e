package league

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 50
	HistoryLimit       = 10
	OpponentsLimit     = 5
	PlayerMatchesLimit = 5
)

// Standing is a statistic row with the display fields derived on read.
type Standing struct {
	Position          int     `json:"position,omitempty"`
	Player            Player  `json:"player"`
	Rating            int     `json:"rating"`
	MatchesPlayed     int     `json:"matchesPlayed"`
	MatchesWon        int     `json:"matchesWon"`
	MatchesLost       int     `json:"matchesLost"`
	WinPercentage     float64 `json:"winPercentage"`
	SetsWon           int     `json:"setsWon"`
	SetsLost          int     `json:"setsLost"`
	SetDifferential   int     `json:"setDifferential"`
	PointsFor         int     `json:"pointsFor"`
	PointsAgainst     int     `json:"pointsAgainst"`
	PointDifferential int     `json:"pointDifferential"`
	AveragePoints     float64 `json:"averagePointsPerMatch"`
}

// NewStanding formats a statistic; position 0 means unranked.
func NewStanding(position int, ps PlayerStatistic) Standing {
	st := ps.Statistic
	return Standing{
		Position:          position,
		Player:            ps.Player,
		Rating:            st.Rating,
		MatchesPlayed:     st.MatchesPlayed,
		MatchesWon:        st.MatchesWon,
		MatchesLost:       st.MatchesLost,
		WinPercentage:     st.WinPercentage(),
		SetsWon:           st.SetsWon,
		SetsLost:          st.SetsLost,
		SetDifferential:   st.SetDifferential(),
		PointsFor:         st.PointsFor,
		PointsAgainst:     st.PointsAgainst,
		PointDifferential: st.PointDifferential(),
		AveragePoints:     st.AveragePoints(),
	}
}

// ViewerPosition is where the requesting player sits in the ranking.
type ViewerPosition struct {
	Position      int `json:"position"`
	Rating        int `json:"rating"`
	MatchesPlayed int `json:"matchesPlayed"`
}

type Ranking struct {
	League    LeagueSummary   `json:"league"`
	Standings []Standing      `json:"standings"`
	Viewer    *ViewerPosition `json:"viewer"`
}

type HistoryItem struct {
	RatingHistoryEntry
	Trend string `json:"trend"`
}

type Opponent struct {
	Player      Player `json:"player"`
	Matches     int    `json:"matches"`
	WinsAgainst int    `json:"winsAgainst"`
}

// MatchSummary is a match with its derived rosters and, once recorded, its result.
type MatchSummary struct {
	ID         string       `json:"id"`
	LeagueCode string       `json:"leagueCode"`
	Court      string       `json:"court"`
	PlayedAt   time.Time    `json:"playedAt"`
	CreatorID  string       `json:"creatorId"`
	Result     *MatchResult `json:"result,omitempty"`
	TeamA      []Player     `json:"teamA"`
	TeamB      []Player     `json:"teamB"`
}

// PlayerMatch is a match seen from one player's side.
type PlayerMatch struct {
	MatchSummary
	Team Team `json:"team"`
	Won  bool `json:"won"`
}

type PlayerReport struct {
	Statistics    Standing      `json:"statistics"`
	History       []HistoryItem `json:"history"`
	Opponents     []Opponent    `json:"opponents"`
	RecentMatches []PlayerMatch `json:"recentMatches"`
}

// Queries formats league data for display. It never writes.
type Queries struct {
	reader Reader
}

func NewQueries(reader Reader) *Queries {
	return &Queries{reader: reader}
}

// Ranking returns the standings of a league. When viewerID is set the viewer
// must belong to the league, and their own position is included.
func (q *Queries) Ranking(ctx context.Context, leagueCode, viewerID string) (*Ranking, error) {
	if viewerID != "" {
		viewer, err := q.reader.GetPlayer(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		if viewer.LeagueCode != leagueCode {
			return nil, ErrNotLeagueMember
		}
	}

	var rows []PlayerStatistic
	var summary *LeagueSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = q.reader.ListStandings(gctx, leagueCode)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = q.reader.GetLeagueSummary(gctx, leagueCode)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranking := &Ranking{League: *summary, Standings: make([]Standing, 0, len(rows))}
	for i, ps := range rows {
		standing := NewStanding(i+1, ps)
		ranking.Standings = append(ranking.Standings, standing)
		if viewerID != "" && ps.Player.ID == viewerID {
			ranking.Viewer = &ViewerPosition{
				Position:      standing.Position,
				Rating:        standing.Rating,
				MatchesPlayed: standing.MatchesPlayed,
			}
		}
	}
	return ranking, nil
}

// PlayerStatistics returns the full record of a player in a league along
// with the rating history, frequent opponents and latest matches.
func (q *Queries) PlayerStatistics(ctx context.Context, leagueCode, playerID string) (*PlayerReport, error) {
	ps, err := q.reader.GetPlayerStatistic(ctx, leagueCode, playerID)
	if err != nil {
		return nil, err
	}

	report := &PlayerReport{Statistics: NewStanding(0, *ps)}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := q.reader.ListRatingHistory(gctx, leagueCode, playerID, HistoryLimit)
		if err != nil {
			return err
		}
		report.History = make([]HistoryItem, 0, len(entries))
		for _, e := range entries {
			report.History = append(report.History, HistoryItem{RatingHistoryEntry: e, Trend: e.Trend()})
		}
		return nil
	})
	g.Go(func() error {
		matches, err := q.reader.ListPlayerMatches(gctx, leagueCode, playerID, 0)
		if err != nil {
			return err
		}
		report.Opponents = FrequentOpponents(playerID, matches, OpponentsLimit)
		return nil
	})
	g.Go(func() error {
		matches, err := q.reader.ListPlayerMatches(gctx, leagueCode, playerID, PlayerMatchesLimit)
		if err != nil {
			return err
		}
		report.RecentMatches = make([]PlayerMatch, 0, len(matches))
		for _, rm := range matches {
			report.RecentMatches = append(report.RecentMatches, playerMatch(playerID, rm))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// RecentResults lists the latest recorded matches of a league. The limit
// defaults to DefaultRecentLimit and is capped at MaxRecentLimit.
func (q *Queries) RecentResults(ctx context.Context, leagueCode string, limit int) ([]MatchSummary, error) {
	matches, err := q.reader.ListRecentMatches(ctx, leagueCode, ClampRecentLimit(limit))
	if err != nil {
		return nil, err
	}
	out := make([]MatchSummary, 0, len(matches))
	for _, rm := range matches {
		out = append(out, Summarize(rm))
	}
	return out, nil
}

// PendingResults lists finished league matches the player played that still have no result.
func (q *Queries) PendingResults(ctx context.Context, playerID string) ([]MatchSummary, error) {
	matches, err := q.reader.ListPendingMatches(ctx, playerID)
	if err != nil {
		return nil, err
	}
	out := make([]MatchSummary, 0, len(matches))
	for _, rm := range matches {
		out = append(out, Summarize(rm))
	}
	return out, nil
}

func ClampRecentLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	return min(limit, MaxRecentLimit)
}

// Summarize derives the rosters of a match from its registrations.
func Summarize(rm RecordedMatch) MatchSummary {
	// an incomplete roster is still shown as far as it goes
	teams, _ := ResolveTeams(rm.Registrations)
	s := MatchSummary{
		ID:         rm.Match.ID,
		LeagueCode: rm.Match.LeagueCode,
		Court:      rm.Match.Court,
		PlayedAt:   rm.Match.PlayedAt,
		CreatorID:  rm.Match.CreatorID,
		Result:     rm.Result,
		TeamA:      teams.A,
		TeamB:      teams.B,
	}
	if s.TeamA == nil {
		s.TeamA = []Player{}
	}
	if s.TeamB == nil {
		s.TeamB = []Player{}
	}
	return s
}

func playerMatch(playerID string, rm RecordedMatch) PlayerMatch {
	pm := PlayerMatch{MatchSummary: Summarize(rm)}
	teams := Teams{A: pm.TeamA, B: pm.TeamB}
	if side, ok := teams.SideOf(playerID); ok {
		pm.Team = side
		pm.Won = rm.Result != nil && rm.Result.Winner == side
	}
	return pm
}

// FrequentOpponents counts, over recorded matches, how often the player faced
// each player on the other side and how many of those matches they won.
func FrequentOpponents(playerID string, matches []RecordedMatch, limit int) []Opponent {
	tally := map[string]*Opponent{}
	for _, rm := range matches {
		if rm.Result == nil {
			continue
		}
		teams, err := ResolveTeams(rm.Registrations)
		if err != nil {
			continue
		}
		side, ok := teams.SideOf(playerID)
		if !ok {
			continue
		}
		for _, p := range teams.Players(side.Opponent()) {
			o, seen := tally[p.ID]
			if !seen {
				o = &Opponent{Player: p}
				tally[p.ID] = o
			}
			o.Matches++
			if rm.Result.Winner == side {
				o.WinsAgainst++
			}
		}
	}

	out := make([]Opponent, 0, len(tally))
	for _, o := range tally {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Matches != out[j].Matches {
			return out[i].Matches > out[j].Matches
		}
		if out[i].WinsAgainst != out[j].WinsAgainst {
			return out[i].WinsAgainst > out[j].WinsAgainst
		}
		return out[i].Player.ID < out[j].Player.ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
