package domain

// BoundingBox is a rectangular query area in degrees.
type BoundingBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Valid reports whether the box is non-degenerate and within the
// coordinate domain.
func (b BoundingBox) Valid() bool {
	if b.MinLat < -90 || b.MaxLat > 90 || b.MinLon < -180 || b.MaxLon > 180 {
		return false
	}
	return b.MinLat < b.MaxLat && b.MinLon < b.MaxLon
}
