package services

import (
	"bus-collection-service/internal/domain"
	"strings"
	"unicode"
)

// namedGroup is one label-keyed subset of an area's records.
type namedGroup struct {
	name  string
	stops []*domain.BusStop
}

// groupByName splits one area's records into named groups.
//
// Records sharing an exact label form a group. When the area contains any
// named record, the unnamed ("") group is discarded as noise. Afterwards,
// groups whose label carries a trailing numeric token ("Main St 1") absorb
// missing categories from the bare-prefix group ("Main St"), and a prefix
// group that donated at least one record is dropped entirely.
//
// Groups are returned in the order their labels first appear.
func groupByName(area []*domain.BusStop) []namedGroup {
	keys := make([]string, 0, len(area))
	byName := make(map[string][]*domain.BusStop, len(area))

	for _, stop := range area {
		if _, ok := byName[stop.Name]; !ok {
			keys = append(keys, stop.Name)
		}
		byName[stop.Name] = append(byName[stop.Name], stop)
	}

	if len(keys) > 1 {
		if _, ok := byName[""]; ok {
			delete(byName, "")
			keys = deleteKey(keys, "")
		}
	}

	keys = mergeNumberedSuffixes(keys, byName)

	groups := make([]namedGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, namedGroup{name: key, stops: byName[key]})
	}
	return groups
}

// mergeNumberedSuffixes distributes a bare-prefix group's records into its
// numbered sub-groups and returns the surviving key order.
//
// A prefix record is copied into a numbered group only while that group still
// lacks the record's category; records appended earlier in the same merge
// count, so each numbered group gains at most one record per category. A
// record distributed this way deliberately appears in several groups.
func mergeNumberedSuffixes(keys []string, byName map[string][]*domain.BusStop) []string {
	prefixOrder := make([]string, 0, 2)
	prefixKeys := make(map[string][]string)

	for _, key := range keys {
		parts := strings.Split(key, " ")
		if len(parts) < 2 || !isDecimal(parts[len(parts)-1]) {
			continue
		}
		prefix := strings.Join(parts[:len(parts)-1], " ")
		if _, ok := prefixKeys[prefix]; !ok {
			prefixOrder = append(prefixOrder, prefix)
		}
		prefixKeys[prefix] = append(prefixKeys[prefix], key)
	}

	for _, prefix := range prefixOrder {
		prefixGroup, ok := byName[prefix]
		if !ok {
			continue
		}

		donated := false
		for _, key := range prefixKeys[prefix] {
			group := byName[key]
			for _, prefixStop := range prefixGroup {
				if !containsCategory(group, prefixStop.Transport) {
					group = append(group, prefixStop)
					donated = true
				}
			}
			byName[key] = group
		}

		if donated {
			delete(byName, prefix)
			keys = deleteKey(keys, prefix)
		}
	}
	return keys
}

func containsCategory(group []*domain.BusStop, t domain.PublicTransport) bool {
	for _, stop := range group {
		if stop.Transport == t {
			return true
		}
	}
	return false
}

// isDecimal reports whether s consists solely of decimal digits; any
// script's digits count, matching how survey labels are written worldwide.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func deleteKey(keys []string, key string) []string {
	out := keys[:0]
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}
