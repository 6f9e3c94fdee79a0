package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Linear-to-angular conversion uses a flat approximation of one degree of
// latitude. Good enough for search radii in the tens-of-meters range.
const metersPerDegree = 111_111

// AngularRadius converts a linear search radius in meters to a great-circle
// central angle in radians.
func AngularRadius(meters float64) float64 {
	return (meters / metersPerDegree) * math.Pi / 180
}

// DistanceMeters returns the haversine distance in meters between two
// points given as (lon, lat) degrees.
func DistanceMeters(a, b orb.Point) float64 {
	return orbgeo.DistanceHaversine(a, b)
}

// centralAngle returns the great-circle central angle in radians between
// two points already expressed as radian latitude/longitude pairs.
func centralAngle(latA, lngA, latB, lngB float64) float64 {
	sinLat := math.Sin((latB - latA) / 2)
	sinLng := math.Sin((lngB - lngA) / 2)

	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLng*sinLng
	return 2 * math.Asin(math.Min(1, math.Sqrt(h)))
}
