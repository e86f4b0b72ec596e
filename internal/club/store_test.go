package club_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/mauv0809/padel-league/internal/club"
	"github.com/mauv0809/padel-league/internal/database"
	"github.com/mauv0809/padel-league/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"), "", "")
	require.NoError(t, err)

	return club.New(db), db, teardown
}

func strp(s string) *string { return &s }

func TestUpsertAndGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	require.NoError(t, store.UpsertPlayer(ctx, club.Profile{ID: "p1", Name: "Ana", Surname: "Ruiz", LeagueCode: "L1"}))
	require.NoError(t, store.UpsertPlayer(ctx, club.Profile{ID: "p2", Name: "Bea", Surname: "Alonso", Category: "oro"}))

	p, err := store.GetProfile(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, club.DefaultCategory, p.Category)
	assert.Equal(t, "L1", p.LeagueCode)

	require.NoError(t, store.UpsertPlayer(ctx, club.Profile{ID: "p1", Name: "Ana María", Surname: "Ruiz", LeagueCode: "L1"}))
	p, err = store.GetProfile(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Ana María", p.Name)

	all, err := store.GetAllPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p2", all[0].ID, "players are sorted by surname")

	_, err = store.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, league.ErrPlayerNotFound)

	err = store.UpsertPlayer(ctx, club.Profile{ID: "p3", Name: "Carla", Category: "titanio"})
	assert.ErrorIs(t, err, club.ErrUnknownCategory)
}

func TestUpdateProfile(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	require.NoError(t, store.UpsertPlayer(ctx, club.Profile{ID: "p1", Name: "Ana", Surname: "Ruiz", Phone: "600000000", Email: "ana@example.com"}))

	p, err := store.UpdateProfile(ctx, "p1", club.ProfileUpdate{Phone: strp("611111111"), Category: strp("bronce")})
	require.NoError(t, err)
	assert.Equal(t, "611111111", p.Phone)
	assert.Equal(t, "bronce", p.Category)
	assert.Equal(t, "Ana", p.Name, "fields left nil are untouched")
	assert.Equal(t, "ana@example.com", p.Email)

	_, err = store.UpdateProfile(ctx, "p1", club.ProfileUpdate{})
	assert.ErrorIs(t, err, club.ErrEmptyProfileUpdate)

	_, err = store.UpdateProfile(ctx, "p1", club.ProfileUpdate{Category: strp("titanio")})
	assert.ErrorIs(t, err, club.ErrUnknownCategory)

	_, err = store.UpdateProfile(ctx, "ghost", club.ProfileUpdate{Name: strp("X")})
	assert.ErrorIs(t, err, league.ErrPlayerNotFound)
}

func TestCreateMatchAndRegister(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	for _, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, store.UpsertPlayer(ctx, club.Profile{ID: id, Name: id, LeagueCode: "L1"}))
	}

	playedAt := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	m, err := store.CreateMatch(ctx, club.NewMatch{LeagueCode: "L1", CreatorID: "p1", Court: "Pista 2", Category: "plata", PlayedAt: playedAt})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, league.MatchPending, m.Status)
	assert.Equal(t, playedAt, m.PlayedAt)

	r1, err := store.Register(ctx, m.ID, "p1", league.RegistrationConfirmed)
	require.NoError(t, err)
	r2, err := store.Register(ctx, m.ID, "p2", league.RegistrationPending)
	require.NoError(t, err)
	assert.Greater(t, r2.ID, r1.ID, "registration ids follow insertion order")
	assert.Equal(t, "p2", r2.Player.ID)

	_, err = store.Register(ctx, m.ID, "p1", league.RegistrationConfirmed)
	assert.ErrorIs(t, err, club.ErrAlreadyRegistered)
	_, err = store.Register(ctx, "missing", "p1", league.RegistrationConfirmed)
	assert.ErrorIs(t, err, league.ErrMatchNotFound)
	_, err = store.Register(ctx, m.ID, "ghost", league.RegistrationConfirmed)
	assert.ErrorIs(t, err, league.ErrPlayerNotFound)

	require.NoError(t, store.UpdateRegistrationStatus(ctx, m.ID, "p2", league.RegistrationConfirmed))
	err = store.UpdateRegistrationStatus(ctx, m.ID, "p3", league.RegistrationConfirmed)
	assert.ErrorIs(t, err, club.ErrRegistrationMissing)

	require.NoError(t, store.UpdateMatchStatus(ctx, m.ID, league.MatchFinished))
	assert.ErrorIs(t, store.UpdateMatchStatus(ctx, "missing", league.MatchFinished), league.ErrMatchNotFound)
	assert.ErrorIs(t, store.UpdateMatchStatus(ctx, m.ID, "played"), club.ErrInvalidStatus)

	var status string
	require.NoError(t, db.QueryRow("SELECT status FROM matches WHERE id = ?", m.ID).Scan(&status))
	assert.Equal(t, "finished", status)

	repo := league.NewStore(db)
	regs := func() []league.Registration {
		var regs []league.Registration
		require.NoError(t, repo.WithTx(ctx, func(tx league.Tx) error {
			var err error
			regs, err = tx.ListRegistrations(ctx, m.ID)
			return err
		}))
		return regs
	}()
	teams, err := league.ResolveTeams(regs)
	require.NoError(t, err)
	assert.Equal(t, "p1", teams.A[0].ID)
	assert.Equal(t, "p2", teams.B[0].ID)
}

func TestFriendlyMatchHasNoLeague(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	require.NoError(t, store.UpsertPlayer(ctx, club.Profile{ID: "p1", Name: "Ana"}))

	m, err := store.CreateMatch(ctx, club.NewMatch{CreatorID: "p1", Status: league.MatchFinished})
	require.NoError(t, err)

	loaded, err := league.NewStore(db).GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, loaded.IsLeague())
}

func TestMatchLifecycleReachesPendingResults(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	for _, id := range []string{"p1", "p2"} {
		require.NoError(t, store.UpsertPlayer(ctx, club.Profile{ID: id, Name: id, LeagueCode: "L1"}))
	}
	queries := league.NewQueries(league.NewStore(db))

	m, err := store.CreateMatch(ctx, club.NewMatch{LeagueCode: "L1", CreatorID: "p1", Status: league.MatchConfirmed})
	require.NoError(t, err)
	for _, id := range []string{"p1", "p2"} {
		_, err := store.Register(ctx, m.ID, id, league.RegistrationPending)
		require.NoError(t, err)
	}

	pending, err := queries.PendingResults(ctx, "p2")
	require.NoError(t, err)
	assert.Empty(t, pending, "unconfirmed players of an unfinished match have nothing pending")

	for _, id := range []string{"p1", "p2"} {
		require.NoError(t, store.UpdateRegistrationStatus(ctx, m.ID, id, league.RegistrationConfirmed))
	}
	require.NoError(t, store.UpdateMatchStatus(ctx, m.ID, league.MatchFinished))

	pending, err = queries.PendingResults(ctx, "p2")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, m.ID, pending[0].ID)
	assert.Len(t, pending[0].TeamA, 1)
	assert.Len(t, pending[0].TeamB, 1)

	players, err := store.GetAllPlayers(ctx)
	require.NoError(t, err)
	assert.Len(t, players, 2)
}
