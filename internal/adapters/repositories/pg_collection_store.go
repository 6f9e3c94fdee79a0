package repositories

import (
	"bus-collection-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Postgres-backed store for resolved collections, used by the batch tool.
// Connections come through the pgx stdlib driver.
type PGCollectionStore struct{ DB *sql.DB }

func NewPGCollectionStore(db *sql.DB) *PGCollectionStore {
	return &PGCollectionStore{DB: db}
}

// EnsureSchema creates the collections table if it does not exist.
func (s *PGCollectionStore) EnsureSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("collection store: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS collections (
		region TEXT NOT NULL,
		position INTEGER NOT NULL,
		platform_id BIGINT,
		stop_id BIGINT,
		name TEXT NOT NULL,
		PRIMARY KEY (region, position)
	);
	`

	if _, err := s.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("collection store: ensure schema: %w", err)
	}

	return nil
}

// ReplaceCollections swaps out a region's resolved collections atomically.
func (s *PGCollectionStore) ReplaceCollections(ctx context.Context, region string, collections []domain.Collection) error {
	if s.DB == nil {
		return errors.New("collection store: DB is nil")
	}

	if strings.TrimSpace(region) == "" {
		return errors.New("replace collections: region must not be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace collections: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE region = $1;`, region); err != nil {
		return fmt.Errorf("replace collections: clear region %q: %w", region, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO collections (region, position, platform_id, stop_id, name)
	VALUES ($1, $2, $3, $4, $5);
	`)
	if err != nil {
		return fmt.Errorf("replace collections: db prepare: %w", err)
	}
	defer stmt.Close()

	for i, c := range collections {
		var platformID, stopID sql.NullInt64
		var name string

		if c.Platform != nil {
			platformID = sql.NullInt64{Int64: c.Platform.ID, Valid: true}
			name = c.Platform.Name
		}
		if c.Stop != nil {
			stopID = sql.NullInt64{Int64: c.Stop.ID, Valid: true}
			if name == "" {
				name = c.Stop.Name
			}
		}

		if _, err := stmt.ExecContext(ctx, region, i, platformID, stopID, name); err != nil {
			return fmt.Errorf("replace collections: insert #%d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace collections: commit: %w", err)
	}

	return nil
}
