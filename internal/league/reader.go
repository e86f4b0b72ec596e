package league

import (
	"context"
	"database/sql"
	"errors"
)

const standingColumns = `
	s.player_id, p.name, p.surname, p.category, p.image_path, COALESCE(p.league_code, ''),
	s.league_code, s.matches_played, s.matches_won, s.matches_lost, s.sets_won, s.sets_lost,
	s.points_for, s.points_against, s.rating, s.updated_at`

const recordedMatchColumns = `
	m.id, m.league_code, m.status, m.creator_id, m.court, m.played_at, m.created_at,
	r.id, r.sets_won_a, r.sets_won_b, r.points_a, r.points_b, r.winning_team, r.created_at`

func (s *store) GetPlayer(ctx context.Context, playerID string) (*Player, error) {
	var p Player
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, surname, category, image_path, COALESCE(league_code, '')
		FROM players WHERE id = ?`, playerID).
		Scan(&p.ID, &p.Name, &p.Surname, &p.Category, &p.ImagePath, &p.LeagueCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, Persistence("load player", err)
	}
	return &p, nil
}

// ListStandings orders by rating, then matches won, then player id so equal ratings rank deterministically.
func (s *store) ListStandings(ctx context.Context, leagueCode string) ([]PlayerStatistic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+standingColumns+`
		FROM league_statistics s
		JOIN players p ON p.id = s.player_id
		WHERE s.league_code = ?
		ORDER BY s.rating DESC, s.matches_won DESC, s.player_id ASC`, leagueCode)
	if err != nil {
		return nil, Persistence("list standings", err)
	}
	defer rows.Close()

	var standings []PlayerStatistic
	for rows.Next() {
		ps, err := scanPlayerStatistic(rows)
		if err != nil {
			return nil, Persistence("scan standing", err)
		}
		standings = append(standings, *ps)
	}
	if err := rows.Err(); err != nil {
		return nil, Persistence("list standings", err)
	}
	return standings, nil
}

func (s *store) GetPlayerStatistic(ctx context.Context, leagueCode, playerID string) (*PlayerStatistic, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+standingColumns+`
		FROM league_statistics s
		JOIN players p ON p.id = s.player_id
		WHERE s.league_code = ? AND s.player_id = ?`, leagueCode, playerID)
	ps, err := scanPlayerStatistic(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatisticNotFound
	}
	if err != nil {
		return nil, Persistence("load player statistic", err)
	}
	return ps, nil
}

func (s *store) GetLeagueSummary(ctx context.Context, leagueCode string) (*LeagueSummary, error) {
	summary := &LeagueSummary{Code: leagueCode}
	var last sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), MAX(played_at) FROM matches
		WHERE league_code = ? AND status = ?`, leagueCode, string(MatchFinished)).
		Scan(&summary.FinishedMatches, &last)
	if err != nil {
		return nil, Persistence("count league matches", err)
	}
	if last.Valid {
		t := fromUnix(last.Int64)
		summary.LastMatchAt = &t
	}
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT player_id) FROM league_statistics WHERE league_code = ?`, leagueCode).
		Scan(&summary.Players)
	if err != nil {
		return nil, Persistence("count league players", err)
	}
	return summary, nil
}

func (s *store) ListRatingHistory(ctx context.Context, leagueCode, playerID string, limit int) ([]RatingHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player_id, league_code, match_id, previous_rating, new_rating, delta, reason, created_at
		FROM rating_history
		WHERE league_code = ? AND player_id = ?
		ORDER BY id DESC
		LIMIT ?`, leagueCode, playerID, sqlLimit(limit))
	if err != nil {
		return nil, Persistence("list rating history", err)
	}
	defer rows.Close()

	var entries []RatingHistoryEntry
	for rows.Next() {
		var e RatingHistoryEntry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.LeagueCode, &e.MatchID, &e.PreviousRating,
			&e.NewRating, &e.Delta, &e.Reason, &createdAt); err != nil {
			return nil, Persistence("scan rating history", err)
		}
		e.CreatedAt = fromUnix(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, Persistence("list rating history", err)
	}
	return entries, nil
}

func (s *store) ListPlayerMatches(ctx context.Context, leagueCode, playerID string, limit int) ([]RecordedMatch, error) {
	return s.listRecorded(ctx, `
		SELECT `+recordedMatchColumns+`
		FROM matches m
		JOIN match_results r ON r.match_id = m.id
		WHERE m.league_code = ? AND m.status = ?
			AND EXISTS (
				SELECT 1 FROM registrations g
				WHERE g.match_id = m.id AND g.player_id = ? AND g.status = ?
			)
		ORDER BY m.played_at DESC, r.created_at DESC, m.id
		LIMIT ?`, leagueCode, string(MatchFinished), playerID, string(RegistrationConfirmed), sqlLimit(limit))
}

func (s *store) ListRecentMatches(ctx context.Context, leagueCode string, limit int) ([]RecordedMatch, error) {
	return s.listRecorded(ctx, `
		SELECT `+recordedMatchColumns+`
		FROM matches m
		JOIN match_results r ON r.match_id = m.id
		WHERE m.league_code = ? AND m.status = ?
		ORDER BY m.played_at DESC, r.created_at DESC, m.id
		LIMIT ?`, leagueCode, string(MatchFinished), sqlLimit(limit))
}

// ListPendingMatches finds finished league matches the player is confirmed in that have no result yet.
func (s *store) ListPendingMatches(ctx context.Context, playerID string) ([]RecordedMatch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.league_code, m.status, m.creator_id, m.court, m.played_at, m.created_at
		FROM matches m
		JOIN registrations g ON g.match_id = m.id
		WHERE g.player_id = ? AND g.status = ? AND m.status = ?
			AND m.league_code IS NOT NULL AND m.league_code != ''
			AND NOT EXISTS (SELECT 1 FROM match_results r WHERE r.match_id = m.id)
		ORDER BY m.played_at DESC, m.id`, playerID, string(RegistrationConfirmed), string(MatchFinished))
	if err != nil {
		return nil, Persistence("list pending matches", err)
	}
	var matches []RecordedMatch
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			rows.Close()
			return nil, Persistence("scan pending match", err)
		}
		matches = append(matches, RecordedMatch{Match: *m})
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, Persistence("list pending matches", err)
	}
	if err := s.loadRosters(ctx, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// listRecorded reads the match rows first and closes them before loading
// sets and rosters, so it also works with a single pooled connection.
func (s *store) listRecorded(ctx context.Context, query string, args ...any) ([]RecordedMatch, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, Persistence("list recorded matches", err)
	}
	var matches []RecordedMatch
	for rows.Next() {
		rm, err := scanRecordedMatch(rows)
		if err != nil {
			rows.Close()
			return nil, Persistence("scan recorded match", err)
		}
		matches = append(matches, *rm)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, Persistence("list recorded matches", err)
	}

	for i := range matches {
		sets, err := listSetScores(ctx, s.db, matches[i].Result.ID)
		if err != nil {
			return nil, err
		}
		matches[i].Result.Sets = sets
	}
	if err := s.loadRosters(ctx, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *store) loadRosters(ctx context.Context, matches []RecordedMatch) error {
	for i := range matches {
		regs, err := listRegistrations(ctx, s.db, matches[i].Match.ID)
		if err != nil {
			return err
		}
		matches[i].Registrations = regs
	}
	return nil
}

func scanRecordedMatch(scanner interface{ Scan(...any) error }) (*RecordedMatch, error) {
	var m Match
	var r MatchResult
	var leagueCode sql.NullString
	var playedAt, createdAt, resultCreatedAt int64
	err := scanner.Scan(&m.ID, &leagueCode, &m.Status, &m.CreatorID, &m.Court, &playedAt, &createdAt,
		&r.ID, &r.SetsWonA, &r.SetsWonB, &r.PointsA, &r.PointsB, &r.Winner, &resultCreatedAt)
	if err != nil {
		return nil, err
	}
	m.LeagueCode = leagueCode.String
	m.PlayedAt = fromUnix(playedAt)
	m.CreatedAt = fromUnix(createdAt)
	r.MatchID = m.ID
	r.LeagueCode = m.LeagueCode
	r.SetsLine = r.Outcome.SetsLine()
	r.CreatedAt = fromUnix(resultCreatedAt)
	return &RecordedMatch{Match: m, Result: &r}, nil
}

func scanPlayerStatistic(scanner interface{ Scan(...any) error }) (*PlayerStatistic, error) {
	var ps PlayerStatistic
	var updatedAt int64
	st := &ps.Statistic
	err := scanner.Scan(&st.PlayerID, &ps.Player.Name, &ps.Player.Surname, &ps.Player.Category,
		&ps.Player.ImagePath, &ps.Player.LeagueCode, &st.LeagueCode, &st.MatchesPlayed, &st.MatchesWon,
		&st.MatchesLost, &st.SetsWon, &st.SetsLost, &st.PointsFor, &st.PointsAgainst, &st.Rating, &updatedAt)
	if err != nil {
		return nil, err
	}
	ps.Player.ID = st.PlayerID
	st.UpdatedAt = fromUnix(updatedAt)
	return &ps, nil
}

// sqlLimit maps "no limit" onto SQLite's LIMIT -1.
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
