package club

import (
	"context"
	"sync"

	"github.com/mauv0809/padel-league/internal/league"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertPlayerFunc             func(p Profile) error
	GetProfileFunc               func(playerID string) (*Profile, error)
	GetAllPlayersFunc            func() ([]Profile, error)
	UpdateProfileFunc            func(playerID string, upd ProfileUpdate) (*Profile, error)
	CreateMatchFunc              func(m NewMatch) (*league.Match, error)
	UpdateMatchStatusFunc        func(matchID string, status league.MatchStatus) error
	RegisterFunc                 func(matchID, playerID string, status league.RegistrationStatus) (*league.Registration, error)
	UpdateRegistrationStatusFunc func(matchID, playerID string, status league.RegistrationStatus) error

	// Call records
	UpsertPlayerCalls  []Profile
	UpdateProfileCalls []struct {
		PlayerID string
		Update   ProfileUpdate
	}
	CreateMatchCalls []NewMatch
	RegisterCalls    []struct {
		MatchID  string
		PlayerID string
		Status   league.RegistrationStatus
	}
}

var _ ClubStore = (*MockStore)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertPlayer(_ context.Context, p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayerCalls = append(m.UpsertPlayerCalls, p)
	if m.UpsertPlayerFunc != nil {
		return m.UpsertPlayerFunc(p)
	}
	return nil
}

func (m *MockStore) GetProfile(_ context.Context, playerID string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(playerID)
	}
	return nil, league.ErrPlayerNotFound
}

func (m *MockStore) GetAllPlayers(_ context.Context) ([]Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateProfile(_ context.Context, playerID string, upd ProfileUpdate) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateProfileCalls = append(m.UpdateProfileCalls, struct {
		PlayerID string
		Update   ProfileUpdate
	}{playerID, upd})
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(playerID, upd)
	}
	return &Profile{ID: playerID}, nil
}

func (m *MockStore) CreateMatch(_ context.Context, nm NewMatch) (*league.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, nm)
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(nm)
	}
	return &league.Match{ID: nm.ID, LeagueCode: nm.LeagueCode, Status: nm.Status, CreatorID: nm.CreatorID}, nil
}

func (m *MockStore) UpdateMatchStatus(_ context.Context, matchID string, status league.MatchStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateMatchStatusFunc != nil {
		return m.UpdateMatchStatusFunc(matchID, status)
	}
	return nil
}

func (m *MockStore) Register(_ context.Context, matchID, playerID string, status league.RegistrationStatus) (*league.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterCalls = append(m.RegisterCalls, struct {
		MatchID  string
		PlayerID string
		Status   league.RegistrationStatus
	}{matchID, playerID, status})
	if m.RegisterFunc != nil {
		return m.RegisterFunc(matchID, playerID, status)
	}
	return &league.Registration{ID: int64(len(m.RegisterCalls)), MatchID: matchID, PlayerID: playerID, Status: status}, nil
}

func (m *MockStore) UpdateRegistrationStatus(_ context.Context, matchID, playerID string, status league.RegistrationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateRegistrationStatusFunc != nil {
		return m.UpdateRegistrationStatusFunc(matchID, playerID, status)
	}
	return nil
}
