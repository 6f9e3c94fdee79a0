package services

import (
	"bus-collection-service/internal/domain"
	"bus-collection-service/internal/geo"
)

// areaSet is a disjoint-set structure over record indices. Unions only ever
// attach a fresh record under an existing root, which keeps the clustering
// identical to a sequential "adopt the first already-assigned neighbor" scan.
type areaSet struct {
	parent []int
}

func newAreaSet(n int) *areaSet {
	s := &areaSet{parent: make([]int, n)}
	for i := range s.parent {
		s.parent[i] = i
	}
	return s
}

// find returns the root of x with path compression.
func (s *areaSet) find(x int) int {
	for s.parent[x] != x {
		s.parent[x] = s.parent[s.parent[x]]
		x = s.parent[x]
	}
	return x
}

func (s *areaSet) attach(child, root int) {
	s.parent[child] = root
}

// groupByArea clusters records into geographic areas by radius chaining.
//
// Records are processed in input order. Each record adopts the area of its
// nearest neighbor that was already processed and lies within the angular
// radius; otherwise it roots a new area. Chains form transitively: A-B-C end
// up together when consecutive links are in range, even if A and C alone are
// not. The result is therefore order-dependent by design, and callers must
// hand records over in a stable order.
//
// Areas are returned in the order their roots were first seen.
func groupByArea(stops []*domain.BusStop, index *geo.PointIndex, angularRadius float64) [][]*domain.BusStop {
	n := len(stops)
	sets := newAreaSet(n)
	assigned := make([]bool, n)

	for i := 0; i < n; i++ {
		neighbors := index.RadiusQuery(i, angularRadius)
		// Skip the query point itself at position 0.
		for _, j := range neighbors[1:] {
			if assigned[j] {
				sets.attach(i, sets.find(j))
				break
			}
		}
		assigned[i] = true
	}

	order := make([]int, 0, n)
	members := make(map[int][]*domain.BusStop, n)
	for i := 0; i < n; i++ {
		root := sets.find(i)
		if _, ok := members[root]; !ok {
			order = append(order, root)
		}
		members[root] = append(members[root], stops[i])
	}

	areas := make([][]*domain.BusStop, 0, len(order))
	for _, root := range order {
		areas = append(areas, members[root])
	}
	return areas
}
