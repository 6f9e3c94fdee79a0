package services

import (
	"bus-collection-service/internal/assign"
	"bus-collection-service/internal/domain"
	"bus-collection-service/internal/geo"
	"bus-collection-service/internal/ports"
	"fmt"
	"slices"

	"github.com/paulmach/orb"
)

// matchGroup resolves one named group into platform/stop collections.
//
// The group is partitioned by category, each partition is sorted by element
// ID for deterministic output, and both partitions are split into explicitly
// tagged and inferred records. The first applicable rule wins:
//
//  1. explicit platforms: one collection per explicit platform, stop drawn
//     from the full stop list with reuse allowed
//  2. explicit stops: one collection per explicit stop, platform drawn from
//     the full platform list with reuse disallowed
//  3. implicit platforms and stops: pair them with reuse allowed
//  4. only platforms: platform-only collections
//  5. only stops: stop-only collections
//
// A group carrying both explicit platforms and explicit stops is ambiguous
// source tagging; it is reported through the warner and rule 1 applies.
func matchGroup(name string, group []*domain.BusStop, warner ports.Warner) []domain.Collection {
	var platforms, stops []*domain.BusStop
	for _, stop := range group {
		switch stop.Transport {
		case domain.Platform:
			platforms = append(platforms, stop)
		case domain.StopPosition:
			stops = append(stops, stop)
		default:
			// Unreachable with a well-formed record set; a new category
			// must be handled here before it can flow through matching.
			panic(fmt.Sprintf("match group %q: unknown public transport category %d", name, stop.Transport))
		}
	}

	byID := func(a, b *domain.BusStop) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	}
	slices.SortFunc(platforms, byID)
	slices.SortFunc(stops, byID)

	platformsExplicit, platformsImplicit := splitExplicit(platforms)
	stopsExplicit, stopsImplicit := splitExplicit(stops)

	if len(platformsExplicit) > 0 && len(stopsExplicit) > 0 {
		warner.Warnf("unexpected explicit platforms and stops for %q", name)
	}

	collections := make([]domain.Collection, 0, len(group))

	switch {
	case len(platformsExplicit) > 0:
		for i, stop := range assignNearest(platformsExplicit, stops, true) {
			collections = append(collections, domain.Collection{Platform: platformsExplicit[i], Stop: stop})
		}

	case len(stopsExplicit) > 0:
		for i, platform := range assignNearest(stopsExplicit, platforms, false) {
			collections = append(collections, domain.Collection{Platform: platform, Stop: stopsExplicit[i]})
		}

	case len(platformsImplicit) > 0 && len(stopsImplicit) > 0:
		for i, stop := range assignNearest(platformsImplicit, stops, true) {
			collections = append(collections, domain.Collection{Platform: platformsImplicit[i], Stop: stop})
		}

	case len(platformsImplicit) > 0:
		for _, platform := range platformsImplicit {
			collections = append(collections, domain.Collection{Platform: platform})
		}

	case len(stopsImplicit) > 0:
		for _, stop := range stopsImplicit {
			collections = append(collections, domain.Collection{Stop: stop})
		}
	}

	return collections
}

// splitExplicit partitions records into explicitly survey-tagged and
// inferred subsets, preserving order.
func splitExplicit(elements []*domain.BusStop) (explicit, implicit []*domain.BusStop) {
	for _, e := range elements {
		if e.Explicit {
			explicit = append(explicit, e)
		} else {
			implicit = append(implicit, e)
		}
	}
	return explicit, implicit
}

// assignNearest picks a candidate for each primary record, or nil when no
// candidate can serve it.
//
// With fewer candidates than primaries the choice is per-primary greedy
// nearest-neighbor, which requires reuse; when reuse is disallowed in that
// situation every primary goes unmatched rather than forcing exclusivity.
// With at least as many candidates as primaries the pairing minimizes total
// great-circle distance; surplus candidates stay unmatched.
func assignNearest(primary, candidates []*domain.BusStop, allowReuse bool) []*domain.BusStop {
	out := make([]*domain.BusStop, len(primary))

	switch {
	case len(candidates) == 0:
		return out

	case len(candidates) == 1:
		if !allowReuse && len(primary) > 1 {
			return out
		}
		for i := range out {
			out[i] = candidates[0]
		}
		return out

	case len(candidates) < len(primary):
		if !allowReuse {
			return out
		}
		index := geo.NewPointIndex(positions(candidates))
		for i, j := range index.Nearest(positions(primary)) {
			out[i] = candidates[j]
		}
		return out

	default:
		cost := make([][]float64, len(primary))
		for i, p := range primary {
			row := make([]float64, len(candidates))
			for j, c := range candidates {
				row[j] = geo.DistanceMeters(p.Position, c.Position)
			}
			cost[i] = row
		}
		for i, j := range assign.Solve(cost) {
			out[i] = candidates[j]
		}
		return out
	}
}

func positions(stops []*domain.BusStop) []orb.Point {
	points := make([]orb.Point, len(stops))
	for i, s := range stops {
		points[i] = s.Position
	}
	return points
}
