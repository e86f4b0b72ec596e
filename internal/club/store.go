package club

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/padel-league/internal/league"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// UpsertPlayer inserts a member or refreshes the profile of an existing one.
func (s *store) UpsertPlayer(ctx context.Context, p Profile) error {
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if !KnownCategory(p.Category) {
		return withDetail(ErrUnknownCategory, p.Category)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (id, name, surname, phone, category, email, image_path, league_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			surname = excluded.surname,
			phone = excluded.phone,
			category = excluded.category,
			email = excluded.email,
			image_path = excluded.image_path,
			league_code = excluded.league_code`,
		p.ID, p.Name, p.Surname, p.Phone, p.Category, p.Email, p.ImagePath, nullString(p.LeagueCode), p.CreatedAt.Unix())
	if err != nil {
		return league.Persistence("upsert player", err)
	}
	return nil
}

func (s *store) GetProfile(ctx context.Context, playerID string) (*Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, surname, phone, category, email, image_path, league_code, created_at
		FROM players WHERE id = ?`, playerID)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, league.ErrPlayerNotFound
	}
	if err != nil {
		return nil, league.Persistence("load profile", err)
	}
	return p, nil
}

func (s *store) GetAllPlayers(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, surname, phone, category, email, image_path, league_code, created_at
		FROM players ORDER BY surname, name, id`)
	if err != nil {
		return nil, league.Persistence("list players", err)
	}
	defer rows.Close()

	var players []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// UpdateProfile writes only the fields set in upd. Column names come from
// the allow-list, never from the request.
func (s *store) UpdateProfile(ctx context.Context, playerID string, upd ProfileUpdate) (*Profile, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	var sets []string
	var args []any
	add := func(column string, v *string) {
		if v != nil {
			sets = append(sets, column+" = ?")
			args = append(args, *v)
		}
	}
	add("name", upd.Name)
	add("surname", upd.Surname)
	add("phone", upd.Phone)
	add("category", upd.Category)
	args = append(args, playerID)

	res, err := s.db.ExecContext(ctx, "UPDATE players SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, league.Persistence("update profile", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, league.ErrPlayerNotFound
	}
	return s.GetProfile(ctx, playerID)
}

func (s *store) CreateMatch(ctx context.Context, m NewMatch) (*league.Match, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = league.MatchPending
	}
	if !validMatchStatus(m.Status) {
		return nil, withDetail(ErrInvalidStatus, string(m.Status))
	}
	if m.Category != "" && !KnownCategory(m.Category) {
		return nil, withDetail(ErrUnknownCategory, m.Category)
	}
	now := time.Now().UTC()
	if m.PlayedAt.IsZero() {
		m.PlayedAt = now
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO matches (id, league_code, status, creator_id, court, category, played_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, nullString(m.LeagueCode), string(m.Status), m.CreatorID, m.Court, m.Category, m.PlayedAt.Unix(), now.Unix())
	if err != nil {
		return nil, league.Persistence("create match", err)
	}
	return &league.Match{
		ID:         m.ID,
		LeagueCode: m.LeagueCode,
		Status:     m.Status,
		CreatorID:  m.CreatorID,
		Court:      m.Court,
		PlayedAt:   time.Unix(m.PlayedAt.Unix(), 0).UTC(),
		CreatedAt:  time.Unix(now.Unix(), 0).UTC(),
	}, nil
}

func (s *store) UpdateMatchStatus(ctx context.Context, matchID string, status league.MatchStatus) error {
	if !validMatchStatus(status) {
		return withDetail(ErrInvalidStatus, string(status))
	}
	res, err := s.db.ExecContext(ctx, "UPDATE matches SET status = ? WHERE id = ?", string(status), matchID)
	if err != nil {
		return league.Persistence("update match status", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return league.ErrMatchNotFound
	}
	return nil
}

// Register adds a player to a match. Registrations keep their insertion
// order, which later decides the team each player is on.
func (s *store) Register(ctx context.Context, matchID, playerID string, status league.RegistrationStatus) (*league.Registration, error) {
	if !validRegistrationStatus(status) {
		return nil, withDetail(ErrInvalidStatus, string(status))
	}
	var matchCategory string
	err := s.db.QueryRowContext(ctx, "SELECT category FROM matches WHERE id = ?", matchID).Scan(&matchCategory)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, league.ErrMatchNotFound
	}
	if err != nil {
		return nil, league.Persistence("load match", err)
	}
	player, err := s.GetProfile(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !LevelPermits(player.Category, matchCategory) {
		return nil, ErrLevelNotPermitted
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO registrations (match_id, player_id, status, created_at)
		VALUES (?, ?, ?, ?)`, matchID, playerID, string(status), now.Unix())
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil, ErrAlreadyRegistered
		}
		return nil, league.Persistence("register player", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, league.Persistence("register player", err)
	}
	return &league.Registration{
		ID:        id,
		MatchID:   matchID,
		PlayerID:  playerID,
		Status:    status,
		CreatedAt: time.Unix(now.Unix(), 0).UTC(),
		Player: league.Player{
			ID:         player.ID,
			Name:       player.Name,
			Surname:    player.Surname,
			Category:   player.Category,
			ImagePath:  player.ImagePath,
			LeagueCode: player.LeagueCode,
		},
	}, nil
}

func (s *store) UpdateRegistrationStatus(ctx context.Context, matchID, playerID string, status league.RegistrationStatus) error {
	if !validRegistrationStatus(status) {
		return withDetail(ErrInvalidStatus, string(status))
	}
	res, err := s.db.ExecContext(ctx, "UPDATE registrations SET status = ? WHERE match_id = ? AND player_id = ?",
		string(status), matchID, playerID)
	if err != nil {
		return league.Persistence("update registration", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRegistrationMissing
	}
	return nil
}

// scanProfile is a helper function to scan a single player row.
func scanProfile(scanner interface{ Scan(...any) error }) (*Profile, error) {
	var p Profile
	var leagueCode sql.NullString
	var createdAt int64
	if err := scanner.Scan(&p.ID, &p.Name, &p.Surname, &p.Phone, &p.Category, &p.Email, &p.ImagePath, &leagueCode, &createdAt); err != nil {
		return nil, err
	}
	p.LeagueCode = leagueCode.String
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &p, nil
}

func validMatchStatus(s league.MatchStatus) bool {
	switch s {
	case league.MatchPending, league.MatchConfirmed, league.MatchFinished, league.MatchCancelled:
		return true
	}
	return false
}

func validRegistrationStatus(s league.RegistrationStatus) bool {
	switch s {
	case league.RegistrationPending, league.RegistrationConfirmed, league.RegistrationCancelled:
		return true
	}
	return false
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
