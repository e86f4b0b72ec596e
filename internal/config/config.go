package config

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBName:    getEnv("DB_NAME"),
		Port:      getOptionalEnv("PORT", "8080"),
		JWTSecret: getEnv("JWT_SECRET"),
		Turso: TursoConfig{
			PrimaryURL: getOptionalEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getOptionalEnv("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID:   getOptionalEnv("GCP_PROJECT", ""),
		CORSOrigins: splitList(getOptionalEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
	if cfg.Turso.Remote() && cfg.Turso.AuthToken == "" {
		log.Fatalf("Error: TURSO_AUTH_TOKEN is required when TURSO_PRIMARY_URL is set.")
	}
	return cfg
}

func getOptionalEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
