package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/padel-league/internal/auth"
	"github.com/mauv0809/padel-league/internal/club"
	"github.com/mauv0809/padel-league/internal/database"
	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/metrics"
	"github.com/mauv0809/padel-league/internal/processor"
	"github.com/prometheus/client_golang/prometheus"
)

const demoLeague = "DEMO"

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	for _, key := range []string{"DB_NAME", "JWT_SECRET"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	config["TURSO_PRIMARY_URL"] = os.Getenv("TURSO_PRIMARY_URL")
	config["TURSO_AUTH_TOKEN"] = os.Getenv("TURSO_AUTH_TOKEN")
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()
	ctx := context.Background()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	clubStore := club.New(db)
	demoPlayers := []club.Profile{
		{ID: "demo-player-1", Name: "Lucia", Surname: "Martin", LeagueCode: demoLeague},
		{ID: "demo-player-2", Name: "Sofia", Surname: "Garcia", LeagueCode: demoLeague},
		{ID: "demo-player-3", Name: "Marta", Surname: "Lopez", LeagueCode: demoLeague},
		{ID: "demo-player-4", Name: "Elena", Surname: "Ruiz", LeagueCode: demoLeague},
	}
	for _, p := range demoPlayers {
		if err := clubStore.UpsertPlayer(ctx, p); err != nil {
			log.Fatalf("Failed to insert demo player %s: %s", p.Name, err)
		}
	}
	log.Info("Ensured demo players exist.", "league", demoLeague, "count", len(demoPlayers))

	creator := demoPlayers[0].ID
	matchID := uuid.NewString()
	_, err = clubStore.CreateMatch(ctx, club.NewMatch{
		ID:         matchID,
		LeagueCode: demoLeague,
		CreatorID:  creator,
		Court:      "Pista 1",
		Status:     league.MatchFinished,
		PlayedAt:   time.Now().Add(-2 * time.Hour),
	})
	if err != nil {
		log.Fatalf("Failed to create demo match: %s", err)
	}
	for _, p := range demoPlayers {
		if _, err := clubStore.Register(ctx, matchID, p.ID, league.RegistrationConfirmed); err != nil {
			log.Fatalf("Failed to register %s: %s", p.Name, err)
		}
	}

	recorder := processor.New(league.NewStore(db), metrics.NewService(prometheus.NewRegistry()))
	result, err := recorder.RecordResult(ctx, matchID, creator, demoSets(6, 2, 4, 6, 7, 5))
	if err != nil {
		log.Fatalf("Failed to record demo result: %s", err)
	}
	log.Info("Recorded demo result", "matchID", matchID, "winner", result.Winner, "sets", result.SetsLine)

	// A second match walks the full lifecycle and is left without a result.
	pendingID := uuid.NewString()
	if _, err := clubStore.CreateMatch(ctx, club.NewMatch{ID: pendingID, LeagueCode: demoLeague, CreatorID: creator, Status: league.MatchConfirmed, PlayedAt: time.Now()}); err != nil {
		log.Fatalf("Failed to create pending match: %s", err)
	}
	for _, p := range demoPlayers {
		if _, err := clubStore.Register(ctx, pendingID, p.ID, league.RegistrationPending); err != nil {
			log.Fatalf("Failed to register %s: %s", p.Name, err)
		}
		if err := clubStore.UpdateRegistrationStatus(ctx, pendingID, p.ID, league.RegistrationConfirmed); err != nil {
			log.Fatalf("Failed to confirm %s: %s", p.Name, err)
		}
	}
	if err := clubStore.UpdateMatchStatus(ctx, pendingID, league.MatchFinished); err != nil {
		log.Fatalf("Failed to finish pending match: %s", err)
	}

	players, err := clubStore.GetAllPlayers(ctx)
	if err != nil {
		log.Fatalf("Failed to list players: %s", err)
	}
	log.Info("Club members in database", "count", len(players))

	token, err := auth.NewToken(cfg["JWT_SECRET"], creator, 24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to sign dev token: %s", err)
	}
	log.Info("Seeding complete.", "pendingMatchID", pendingID)
	fmt.Printf("Dev token for %s:\n%s\n", creator, token)
}

func demoSets(points ...int) []league.SetInput {
	sets := make([]league.SetInput, 0, len(points)/2)
	for i := 0; i+1 < len(points); i += 2 {
		a, b := points[i], points[i+1]
		sets = append(sets, league.SetInput{PointsTeamA: &a, PointsTeamB: &b})
	}
	return sets
}
