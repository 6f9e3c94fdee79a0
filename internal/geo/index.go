package geo

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// PointIndex answers radius and nearest-neighbor queries over a fixed point
// set using great-circle distance. Coordinates are converted to radians once
// at construction; the index itself is read-only and safe for concurrent use.
type PointIndex struct {
	lat []float64 // radians
	lng []float64 // radians
}

// NewPointIndex builds an index over points given as (lon, lat) degrees.
func NewPointIndex(points []orb.Point) *PointIndex {
	idx := &PointIndex{
		lat: make([]float64, len(points)),
		lng: make([]float64, len(points)),
	}
	for i, p := range points {
		idx.lng[i] = p[0] * math.Pi / 180
		idx.lat[i] = p[1] * math.Pi / 180
	}
	return idx
}

func (x *PointIndex) Len() int { return len(x.lat) }

// RadiusQuery returns the indices of all backing points within angularRadius
// radians of backing point i, ordered by ascending distance. Point i itself
// is always first, at distance zero. Equidistant neighbors are ordered by
// ascending index so results are reproducible.
func (x *PointIndex) RadiusQuery(i int, angularRadius float64) []int {
	type hit struct {
		index int
		angle float64
	}

	hits := make([]hit, 0, 8)
	for j := range x.lat {
		if j == i {
			continue
		}
		a := centralAngle(x.lat[i], x.lng[i], x.lat[j], x.lng[j])
		if a <= angularRadius {
			hits = append(hits, hit{index: j, angle: a})
		}
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].angle != hits[b].angle {
			return hits[a].angle < hits[b].angle
		}
		return hits[a].index < hits[b].index
	})

	out := make([]int, 0, 1+len(hits))
	out = append(out, i)
	for _, h := range hits {
		out = append(out, h.index)
	}
	return out
}

// Nearest returns, for each query point given as (lon, lat) degrees, the
// index of the closest backing point. Ties resolve to the lowest index.
func (x *PointIndex) Nearest(points []orb.Point) []int {
	out := make([]int, len(points))
	for qi, p := range points {
		qLng := p[0] * math.Pi / 180
		qLat := p[1] * math.Pi / 180

		best := -1
		bestAngle := math.Inf(1)
		for j := range x.lat {
			a := centralAngle(qLat, qLng, x.lat[j], x.lng[j])
			if a < bestAngle {
				bestAngle = a
				best = j
			}
		}
		out[qi] = best
	}
	return out
}
