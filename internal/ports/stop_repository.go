package ports

import (
	"bus-collection-service/internal/domain"
	"context"
)

// Port: a boundary for persisting and retrieving surveyed bus stop records.
// Records are keyed by a caller-chosen region name.
type StopRepository interface {
	// Retrieve all stored records for a region, ordered by element ID.
	ListStops(ctx context.Context, region string) ([]*domain.BusStop, error)
	// Replace a region's records atomically.
	ReplaceStops(ctx context.Context, region string, stops []*domain.BusStop) error
}
