package ports

import (
	"bus-collection-service/internal/domain"
	"context"
)

// Port: a boundary for fetching raw bus stop records from a map data provider.
type StopSource interface {
	// Retrieve all bus stop elements inside the bounding box.
	FetchStops(ctx context.Context, box domain.BoundingBox) ([]*domain.BusStop, error)
}
