package config

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const MigrationsPath = "./scripts/migrations.sql"

// InitDatabase initializes the SQLite database
func InitDatabase(dbPath string) (*sql.DB, error) {
	// Create data directory if not exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	// Open database; foreign keys on so deleting a recording drops its events
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	log.Println("Database initialized successfully")
	return db, nil
}

func runMigrations(db *sql.DB) error {
	// Read migration file
	migrations, err := os.ReadFile(MigrationsPath)
	if err != nil {
		return err
	}

	// Execute migrations
	_, err = db.Exec(string(migrations))
	return err
}
