package repositories

import (
	"bus-collection-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// SQLite-backed implementation of the StopRepository port.
type SqliteStopRepository struct{ DB *sql.DB }

func NewSqliteStopRepository(db *sql.DB) *SqliteStopRepository {
	return &SqliteStopRepository{DB: db}
}

// Retrieve all stored records for a region, ordered by element ID.
func (s *SqliteStopRepository) ListStops(ctx context.Context, region string) ([]*domain.BusStop, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite stop repository: DB is nil")
	}

	if strings.TrimSpace(region) == "" {
		return nil, errors.New("list stops: region must not be empty")
	}

	query := `
	SELECT
		element_id,
		lon,
		lat,
		name,
		explicit,
		transport
	FROM stops
	WHERE region = ?
	ORDER BY element_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, region)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]*domain.BusStop, 0, 64)
	for rows.Next() {
		var (
			id        int64
			lon, lat  float64
			name      string
			explicit  bool
			transport string
		)
		if err := rows.Scan(&id, &lon, &lat, &name, &explicit, &transport); err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}

		t, err := parseTransport(transport)
		if err != nil {
			return nil, fmt.Errorf("list stops: element %d: %w", id, err)
		}

		stops = append(stops, &domain.BusStop{
			ID:        id,
			Position:  orb.Point{lon, lat},
			Name:      name,
			Explicit:  explicit,
			Transport: t,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return stops, nil
}

// Replace a region's records atomically.
func (s *SqliteStopRepository) ReplaceStops(ctx context.Context, region string, stops []*domain.BusStop) error {
	if s.DB == nil {
		return errors.New("sqlite stop repository: DB is nil")
	}

	if strings.TrimSpace(region) == "" {
		return errors.New("replace stops: region must not be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace stops: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stops WHERE region = ?;`, region); err != nil {
		return fmt.Errorf("replace stops: clear region %q: %w", region, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO stops (region, element_id, lon, lat, name, explicit, transport)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("replace stops: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, stop := range stops {
		_, err := stmt.ExecContext(ctx,
			region,
			stop.ID,
			stop.Position[0],
			stop.Position[1],
			stop.Name,
			stop.Explicit,
			stop.Transport.String(),
		)
		if err != nil {
			return fmt.Errorf("replace stops: insert element %d: %w", stop.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace stops: commit: %w", err)
	}

	return nil
}

func parseTransport(s string) (domain.PublicTransport, error) {
	switch s {
	case "platform":
		return domain.Platform, nil
	case "stop_position":
		return domain.StopPosition, nil
	default:
		return 0, fmt.Errorf("unknown transport value %q", s)
	}
}
