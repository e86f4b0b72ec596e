package database

import (
	"database/sql"
	"embed"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// localDSNOptions applies to every pooled connection. _txlock=immediate makes
// BeginTx take the write lock up front.
const localDSNOptions = "_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate"

// InitDB initializes the database and ensures the schema is up to date.
// It returns a teardown func that closes the connection pool.
func InitDB(dbPath string, primaryUrl string, authToken string) (*sql.DB, func(), error) {
	// For local-only databases, dbPath is the filename.
	if primaryUrl == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err := sql.Open("sqlite3", localDSN(dbPath))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
		if dbPath == ":memory:" {
			// every new connection would see its own empty database
			db.SetMaxOpenConns(1)
		}
		if err = runMigrations(db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to migrate local db: %w", err)
		}
		return db, teardown(db), nil
	}
	log.Info("Initializing Turso database", "url", primaryUrl)
	db, err := sql.Open("libsql", primaryUrl+"?authToken="+authToken)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open db %s: %s", primaryUrl, err)
		return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryUrl, err)
	}
	if _, err = db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		log.Warn("Could not enable foreign keys on remote database", "error", err)
	}
	if err = runMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate remote db: %w", err)
	}
	return db, teardown(db), nil
}

func localDSN(dbPath string) string {
	if dbPath == ":memory:" {
		return "file::memory:?" + localDSNOptions
	}
	return "file:" + dbPath + "?" + localDSNOptions
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}
	log.Info("Database initialized successfully")
	return nil
}

func teardown(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", "error", err)
		}
	}
}
