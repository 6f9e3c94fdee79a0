package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		region TEXT NOT NULL,
		element_id INTEGER NOT NULL,
		lon REAL NOT NULL,
		lat REAL NOT NULL,
		name TEXT NOT NULL,
		explicit INTEGER NOT NULL,
		transport TEXT NOT NULL,
		PRIMARY KEY (region, element_id)
	);
	`

	createElementCacheQuery := `
	CREATE TABLE IF NOT EXISTS overpass_cache (
		query TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		fetched_at INTEGER NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_stops_region
	ON stops(region);
	`

	statements := []string{
		createStopsQuery,
		createElementCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
