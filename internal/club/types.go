package club

import (
	"database/sql"
	"time"

	"github.com/mauv0809/padel-league/internal/league"
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
}

// Profile is a club member as stored.
type Profile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Surname    string    `json:"surname"`
	Phone      string    `json:"phone"`
	Category   string    `json:"category"`
	Email      string    `json:"email"`
	ImagePath  string    `json:"imagePath"`
	LeagueCode string    `json:"leagueCode,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewMatch describes a match to schedule. An empty ID gets a generated one.
type NewMatch struct {
	ID         string
	LeagueCode string
	CreatorID  string
	Court      string
	Category   string
	Status     league.MatchStatus
	PlayedAt   time.Time
}

// ProfileUpdate lists every field a member may change on their own profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Surname  *string `json:"surname,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Category *string `json:"category,omitempty"`
}
