package league

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// store handles all league database operations.
type store struct {
	db *sql.DB
}

// txStore runs the recorder writes inside one transaction.
type txStore struct {
	tx *sql.Tx
}

// NewStore creates a new league Repository.
func NewStore(db *sql.DB) Repository {
	return &store{
		db: db,
	}
}

func (s *store) WithTx(ctx context.Context, fn func(tx Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Persistence("begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("Failed to roll back transaction", "error", rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = Persistence("commit transaction", cErr)
		}
	}()
	return fn(&txStore{tx: tx})
}

func (s *store) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, league_code, status, creator_id, court, played_at, created_at
		FROM matches WHERE id = ?`, matchID)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, Persistence("load match", err)
	}
	return m, nil
}

func (s *store) HasResult(ctx context.Context, matchID string) (bool, error) {
	return hasResult(ctx, s.db, matchID)
}

func (t *txStore) HasResult(ctx context.Context, matchID string) (bool, error) {
	return hasResult(ctx, t.tx, matchID)
}

func (t *txStore) ListRegistrations(ctx context.Context, matchID string) ([]Registration, error) {
	return listRegistrations(ctx, t.tx, matchID)
}

// InsertResult stores the result row. A second result for the same match
// violates the unique index and is reported as ErrResultAlreadyRecorded.
func (t *txStore) InsertResult(ctx context.Context, r *MatchResult) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO match_results (id, match_id, sets_won_a, sets_won_b, points_a, points_b, winning_team, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.MatchID, r.SetsWonA, r.SetsWonB, r.PointsA, r.PointsB, string(r.Winner), r.CreatedAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrResultAlreadyRecorded
		}
		return Persistence("insert match result", err)
	}
	return nil
}

func (t *txStore) InsertSetScores(ctx context.Context, resultID string, sets []SetScore) error {
	stmt, err := t.tx.PrepareContext(ctx, `
		INSERT INTO set_scores (result_id, set_number, points_a, points_b)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return Persistence("prepare set scores", err)
	}
	defer stmt.Close()

	for _, set := range sets {
		if _, err := stmt.ExecContext(ctx, resultID, set.Number, set.PointsA, set.PointsB); err != nil {
			return Persistence(fmt.Sprintf("insert set %d", set.Number), err)
		}
	}
	return nil
}

func (t *txStore) GetStatistic(ctx context.Context, playerID, leagueCode string) (*Statistic, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT player_id, league_code, matches_played, matches_won, matches_lost, sets_won, sets_lost,
			points_for, points_against, rating, updated_at
		FROM league_statistics WHERE player_id = ? AND league_code = ?`, playerID, leagueCode)
	var stat Statistic
	var updatedAt int64
	err := row.Scan(&stat.PlayerID, &stat.LeagueCode, &stat.MatchesPlayed, &stat.MatchesWon, &stat.MatchesLost,
		&stat.SetsWon, &stat.SetsLost, &stat.PointsFor, &stat.PointsAgainst, &stat.Rating, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatisticNotFound
	}
	if err != nil {
		return nil, Persistence("load statistic", err)
	}
	stat.UpdatedAt = fromUnix(updatedAt)
	return &stat, nil
}

func (t *txStore) SaveStatistic(ctx context.Context, stat *Statistic) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO league_statistics (player_id, league_code, matches_played, matches_won, matches_lost,
			sets_won, sets_lost, points_for, points_against, rating, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_id, league_code) DO UPDATE SET
			matches_played = excluded.matches_played,
			matches_won = excluded.matches_won,
			matches_lost = excluded.matches_lost,
			sets_won = excluded.sets_won,
			sets_lost = excluded.sets_lost,
			points_for = excluded.points_for,
			points_against = excluded.points_against,
			rating = excluded.rating,
			updated_at = excluded.updated_at`,
		stat.PlayerID, stat.LeagueCode, stat.MatchesPlayed, stat.MatchesWon, stat.MatchesLost,
		stat.SetsWon, stat.SetsLost, stat.PointsFor, stat.PointsAgainst, stat.Rating, stat.UpdatedAt.Unix())
	if err != nil {
		return Persistence("save statistic", err)
	}
	return nil
}

func (t *txStore) AppendRatingHistory(ctx context.Context, e *RatingHistoryEntry) error {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO rating_history (player_id, league_code, match_id, previous_rating, new_rating, delta, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.PlayerID, e.LeagueCode, e.MatchID, e.PreviousRating, e.NewRating, e.Delta, e.Reason, e.CreatedAt.Unix())
	if err != nil {
		return Persistence("append rating history", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		e.ID = id
	}
	return nil
}

func hasResult(ctx context.Context, q queryer, matchID string) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM match_results WHERE match_id = ?", matchID).Scan(&n)
	if err != nil {
		return false, Persistence("check existing result", err)
	}
	return n > 0, nil
}

func listRegistrations(ctx context.Context, q queryer, matchID string) ([]Registration, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT r.id, r.match_id, r.player_id, r.status, r.created_at,
			p.name, p.surname, p.category, p.image_path, COALESCE(p.league_code, '')
		FROM registrations r
		JOIN players p ON p.id = r.player_id
		WHERE r.match_id = ?
		ORDER BY r.id`, matchID)
	if err != nil {
		return nil, Persistence("list registrations", err)
	}
	defer rows.Close()

	var regs []Registration
	for rows.Next() {
		var r Registration
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.MatchID, &r.PlayerID, &r.Status, &createdAt,
			&r.Player.Name, &r.Player.Surname, &r.Player.Category, &r.Player.ImagePath, &r.Player.LeagueCode); err != nil {
			return nil, Persistence("scan registration", err)
		}
		r.Player.ID = r.PlayerID
		r.CreatedAt = fromUnix(createdAt)
		regs = append(regs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, Persistence("list registrations", err)
	}
	return regs, nil
}

func listSetScores(ctx context.Context, q queryer, resultID string) ([]SetScore, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT set_number, points_a, points_b FROM set_scores
		WHERE result_id = ? ORDER BY set_number`, resultID)
	if err != nil {
		return nil, Persistence("list set scores", err)
	}
	defer rows.Close()

	var sets []SetScore
	for rows.Next() {
		var set SetScore
		if err := rows.Scan(&set.Number, &set.PointsA, &set.PointsB); err != nil {
			return nil, Persistence("scan set score", err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, Persistence("list set scores", err)
	}
	return sets, nil
}

// scanMatch is a helper function to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var m Match
	var leagueCode sql.NullString
	var playedAt, createdAt int64
	if err := scanner.Scan(&m.ID, &leagueCode, &m.Status, &m.CreatorID, &m.Court, &playedAt, &createdAt); err != nil {
		return nil, err
	}
	m.LeagueCode = leagueCode.String
	m.PlayedAt = fromUnix(playedAt)
	m.CreatedAt = fromUnix(createdAt)
	return &m, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}

func fromUnix(v int64) time.Time {
	return time.Unix(v, 0).UTC()
}
