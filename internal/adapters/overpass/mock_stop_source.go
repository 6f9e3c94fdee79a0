package overpass

import (
	"bus-collection-service/internal/domain"
	"context"
)

// MockStopSource serves a fixed record set, for tests and offline runs.
type MockStopSource struct {
	Stops []*domain.BusStop
	Err   error
}

func (m *MockStopSource) FetchStops(ctx context.Context, box domain.BoundingBox) ([]*domain.BusStop, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Stops, nil
}
