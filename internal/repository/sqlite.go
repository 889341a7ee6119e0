// Package repository implements SQLite-backed persistence for mood entries,
// day context records, and settings.
package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (creating if necessary) the SQLite database at path and
// applies the schema. The special path ":memory:" yields an in-memory
// database, used by tests.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path+"?_fk=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// migrate creates the necessary tables
func migrate(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS mood_entries (
			date TEXT NOT NULL,
			segment INTEGER NOT NULL,
			rating REAL NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			logged_at DATETIME NOT NULL,
			PRIMARY KEY (date, segment)
		);

		CREATE TABLE IF NOT EXISTS day_context (
			date TEXT PRIMARY KEY,
			weather_condition TEXT,
			temperature REAL,
			temperature_unit TEXT,
			weather_description TEXT NOT NULL DEFAULT '',
			auto_weather INTEGER NOT NULL DEFAULT 0,
			sleep_quality INTEGER,
			bedtime DATETIME,
			wake_time DATETIME,
			exercise_level TEXT,
			social_activities TEXT,
			hobbies TEXT,
			work_stress INTEGER,
			custom_tags TEXT,
			note TEXT NOT NULL DEFAULT '',
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_mood_entries_logged_at ON mood_entries(logged_at);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
