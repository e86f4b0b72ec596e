package config

// Config holds all configuration for the application.
type Config struct {
	DBName      string
	Port        string
	Turso       TursoConfig
	JWTSecret   string
	ProjectID   string
	CORSOrigins []string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// Remote reports whether the database lives on a Turso primary instead of a local file.
func (t TursoConfig) Remote() bool {
	return t.PrimaryURL != ""
}
