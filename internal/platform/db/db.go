package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open connects to the postgres database holding exported collections and
// verifies the connection before handing it out.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open collection db: %w", err)
	}

	// The export tool runs a single transactional replace, so a small pool
	// is plenty.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("open collection db: verify postgres connection: %w", err)
	}

	return db, nil
}
