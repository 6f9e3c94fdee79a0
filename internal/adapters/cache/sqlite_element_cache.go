package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLite-backed cache for raw Overpass responses keyed by query text.
// Keys are expected to be consistent (the adapter builds queries
// deterministically) so identical areas hit the same row.
type SqliteElementCache struct {
	DB *sql.DB
}

func NewSqliteElementCache(db *sql.DB) *SqliteElementCache {
	return &SqliteElementCache{DB: db}
}

// Get returns the cached payload for key, or ok=false on a miss.
func (s *SqliteElementCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("element cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get element cache: key must not be empty")
	}

	q := `
	SELECT payload
	FROM overpass_cache
	WHERE query = ?;
	`

	var payload []byte
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get element cache: query overpass_cache table: %w", err)
	}

	return payload, true, nil
}

// Put stores a payload under key, replacing any previous value.
func (s *SqliteElementCache) Put(ctx context.Context, key string, payload []byte) error {
	if s.DB == nil {
		return errors.New("element cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert element cache: key must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO overpass_cache (query, payload, fetched_at)
	VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, key, payload, time.Now().UTC().Unix()); err != nil {
		return fmt.Errorf("insert element cache: %w", err)
	}

	return nil
}
