package league

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/mauv0809/padel-league/internal/database"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*sql.DB, Repository) {
	t.Helper()
	db, teardown, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"), "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)
	return db, NewStore(db)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func seedPlayer(t *testing.T, db *sql.DB, id, leagueCode string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO players (id, name, surname, category, league_code, created_at) VALUES (?, ?, ?, 'plata', ?, ?)`,
		id, "Name "+id, "Surname "+id, nullable(leagueCode), time.Now().Unix())
	require.NoError(t, err)
}

func seedMatch(t *testing.T, db *sql.DB, id, leagueCode, creatorID string, status MatchStatus, playedAt int64) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO matches (id, league_code, status, creator_id, court, played_at, created_at) VALUES (?, ?, ?, ?, 'Court 1', ?, ?)`,
		id, nullable(leagueCode), string(status), creatorID, playedAt, playedAt)
	require.NoError(t, err)
}

func seedRegistration(t *testing.T, db *sql.DB, matchID, playerID string, status RegistrationStatus) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO registrations (match_id, player_id, status, created_at) VALUES (?, ?, ?, ?)`,
		matchID, playerID, string(status), time.Now().Unix())
	require.NoError(t, err)
}

// seedLeagueMatch creates a finished league match created by the first player
// with every player confirmed in the given order.
func seedLeagueMatch(t *testing.T, db *sql.DB, id, leagueCode string, playedAt int64, players ...string) {
	t.Helper()
	seedMatch(t, db, id, leagueCode, players[0], MatchFinished, playedAt)
	for _, p := range players {
		seedRegistration(t, db, id, p, RegistrationConfirmed)
	}
}

// record writes a result the same way the recorder does.
func record(t *testing.T, repo Repository, matchID string, sets []SetScore) *MatchResult {
	t.Helper()
	ctx := context.Background()
	match, err := repo.GetMatch(ctx, matchID)
	require.NoError(t, err)

	var result *MatchResult
	err = repo.WithTx(ctx, func(tx Tx) error {
		outcome, err := CalculateOutcome(sets)
		if err != nil {
			return err
		}
		regs, err := tx.ListRegistrations(ctx, matchID)
		if err != nil {
			return err
		}
		teams, err := ResolveTeams(regs)
		if err != nil {
			return err
		}
		result = NewMatchResult("result-"+matchID, match, outcome, sets, time.Now().UTC())
		if err := tx.InsertResult(ctx, result); err != nil {
			return err
		}
		if err := tx.InsertSetScores(ctx, result.ID, sets); err != nil {
			return err
		}
		for _, side := range []Team{TeamA, TeamB} {
			for _, p := range teams.Players(side) {
				if _, _, err := ApplyMatchOutcome(ctx, tx, OutcomeFor(p.ID, side, result)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	require.NoError(t, err)
	return result
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
