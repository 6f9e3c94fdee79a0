package services

import (
	"bus-collection-service/internal/domain"
	"bus-collection-service/internal/geo"
	"bus-collection-service/internal/ports"

	"github.com/paulmach/orb"
)

// BuildCollections resolves raw bus stop records into logical collections,
// each pairing a boarding platform with its physical stop position.
//
// The pipeline runs strictly forward: records are clustered into geographic
// areas by radius chaining, split into named groups per area, and matched
// per group. searchRadiusMeters controls area chaining and is converted to
// an angular radius internally.
//
// The function is pure: it holds no state between calls, never mutates its
// inputs, and emits non-fatal diagnostics only through warner. Output order
// follows area discovery order, then label order within an area, then the
// ID-sorted primary order within a group.
func BuildCollections(stops []*domain.BusStop, searchRadiusMeters float64, warner ports.Warner) []domain.Collection {
	if len(stops) == 0 {
		return []domain.Collection{}
	}

	points := make([]orb.Point, len(stops))
	for i, s := range stops {
		points[i] = s.Position
	}
	index := geo.NewPointIndex(points)

	angularRadius := geo.AngularRadius(searchRadiusMeters)
	areas := groupByArea(stops, index, angularRadius)

	collections := make([]domain.Collection, 0, len(stops))
	for _, area := range areas {
		for _, group := range groupByName(area) {
			collections = append(collections, matchGroup(group.name, group.stops, warner)...)
		}
	}
	return collections
}
