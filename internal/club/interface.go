package club

import (
	"context"

	"github.com/mauv0809/padel-league/internal/league"
)

// ClubStore defines the interface for interacting with the club's data.
type ClubStore interface {
	UpsertPlayer(ctx context.Context, p Profile) error
	GetProfile(ctx context.Context, playerID string) (*Profile, error)
	GetAllPlayers(ctx context.Context) ([]Profile, error)
	UpdateProfile(ctx context.Context, playerID string, upd ProfileUpdate) (*Profile, error)
	CreateMatch(ctx context.Context, m NewMatch) (*league.Match, error)
	UpdateMatchStatus(ctx context.Context, matchID string, status league.MatchStatus) error
	Register(ctx context.Context, matchID, playerID string, status league.RegistrationStatus) (*league.Registration, error)
	UpdateRegistrationStatus(ctx context.Context, matchID, playerID string, status league.RegistrationStatus) error
}
