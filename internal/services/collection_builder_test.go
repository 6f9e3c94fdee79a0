package services

import (
	"fmt"
	"testing"

	"bus-collection-service/internal/domain"
	"bus-collection-service/internal/geo"

	"github.com/paulmach/orb"
)

// captureWarner records diagnostics for assertions.
type captureWarner struct {
	messages []string
}

func (w *captureWarner) Warnf(format string, args ...any) {
	w.messages = append(w.messages, fmt.Sprintf(format, args...))
}

// stop builds a test record. Latitude offsets of 0.0001 degrees are ~11m.
func stop(id int64, lat float64, name string, explicit bool, t domain.PublicTransport) *domain.BusStop {
	return &domain.BusStop{
		ID:        id,
		Position:  orb.Point{13.40, lat},
		Name:      name,
		Explicit:  explicit,
		Transport: t,
	}
}

const testRadius = 50.0 // meters

func TestBuildCollectionsEmptyInput(t *testing.T) {
	w := &captureWarner{}

	got := BuildCollections(nil, testRadius, w)
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %d collections", len(got))
	}
	if len(w.messages) != 0 {
		t.Fatalf("unexpected warnings: %v", w.messages)
	}
}

func TestAreaChainingTransitivity(t *testing.T) {
	// A-B and B-C are ~44m apart (inside a 50m radius); A-C is ~89m
	// (outside). Chaining through B puts all three in one area.
	stops := []*domain.BusStop{
		stop(1, 50.0000, "", false, domain.Platform),
		stop(2, 50.0004, "", false, domain.Platform),
		stop(3, 50.0008, "", false, domain.Platform),
	}

	points := make([]orb.Point, len(stops))
	for i, s := range stops {
		points[i] = s.Position
	}
	index := geo.NewPointIndex(points)

	areas := groupByArea(stops, index, geo.AngularRadius(testRadius))

	if len(areas) != 1 {
		t.Fatalf("expected a single chained area, got %d", len(areas))
	}
	if len(areas[0]) != 3 {
		t.Fatalf("expected 3 members, got %d", len(areas[0]))
	}
}

func TestAreaGroupingIsAPartition(t *testing.T) {
	// Two well-separated clusters; every record lands in exactly one area.
	stops := []*domain.BusStop{
		stop(1, 50.0000, "North", false, domain.Platform),
		stop(2, 50.0001, "North", false, domain.StopPosition),
		stop(3, 51.0000, "South", false, domain.Platform),
		stop(4, 51.0001, "South", false, domain.StopPosition),
	}

	points := make([]orb.Point, len(stops))
	for i, s := range stops {
		points[i] = s.Position
	}
	index := geo.NewPointIndex(points)

	areas := groupByArea(stops, index, geo.AngularRadius(testRadius))

	if len(areas) != 2 {
		t.Fatalf("expected 2 areas, got %d", len(areas))
	}

	seen := make(map[int64]int)
	for _, area := range areas {
		for _, s := range area {
			seen[s.ID]++
		}
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("record %d appears in %d areas, want 1", id, count)
		}
	}
	if len(seen) != len(stops) {
		t.Errorf("records in areas = %d, want %d", len(seen), len(stops))
	}
}

func TestSingleImplicitPair(t *testing.T) {
	stops := []*domain.BusStop{
		stop(1, 50.0000, "", false, domain.Platform),
		stop(2, 50.0001, "", false, domain.StopPosition),
	}
	w := &captureWarner{}

	got := BuildCollections(stops, testRadius, w)

	if len(got) != 1 {
		t.Fatalf("expected 1 collection, got %d", len(got))
	}
	if got[0].Platform != stops[0] || got[0].Stop != stops[1] {
		t.Fatalf("collection does not pair the platform with the stop: %+v", got[0])
	}
}

func TestBroadcastSingleStop(t *testing.T) {
	// Two implicit platforms and one implicit stop: both platforms receive
	// the same stop.
	stops := []*domain.BusStop{
		stop(1, 50.0000, "", false, domain.Platform),
		stop(2, 50.0002, "", false, domain.Platform),
		stop(3, 50.0001, "", false, domain.StopPosition),
	}
	w := &captureWarner{}

	got := BuildCollections(stops, testRadius, w)

	if len(got) != 2 {
		t.Fatalf("expected 2 collections, got %d", len(got))
	}
	for i, c := range got {
		if c.Stop != stops[2] {
			t.Errorf("collection %d stop = %v, want the shared stop", i, c.Stop)
		}
	}
	if got[0].Platform != stops[0] || got[1].Platform != stops[1] {
		t.Fatalf("platforms not emitted in ID order")
	}
}

func TestHungarianBranchMinimizesTotalDistance(t *testing.T) {
	// Two explicit platforms, three stops. The optimal pairing is
	// P1-S1 and P2-S2; S3 is surplus and produces nothing.
	p1 := stop(1, 50.0000, "Alpha", true, domain.Platform)
	p2 := stop(2, 50.0002, "Alpha", true, domain.Platform)
	s1 := stop(3, 50.00004, "Alpha", false, domain.StopPosition)
	s2 := stop(4, 50.00024, "Alpha", false, domain.StopPosition)
	s3 := stop(5, 50.0004, "Alpha", false, domain.StopPosition)

	w := &captureWarner{}
	got := BuildCollections([]*domain.BusStop{p1, p2, s1, s2, s3}, testRadius, w)

	if len(got) != 2 {
		t.Fatalf("expected 2 collections, got %d", len(got))
	}
	if got[0].Platform != p1 || got[0].Stop != s1 {
		t.Errorf("collection 0 = (%v, %v), want (p1, s1)", got[0].Platform.ID, got[0].Stop.ID)
	}
	if got[1].Platform != p2 || got[1].Stop != s2 {
		t.Errorf("collection 1 = (%v, %v), want (p2, s2)", got[1].Platform.ID, got[1].Stop.ID)
	}
	for _, c := range got {
		if c.Stop == s3 {
			t.Errorf("surplus stop was assigned")
		}
	}
}

func TestReuseForbiddenLeavesStopsUnmatched(t *testing.T) {
	// Three explicit stops, one platform. A single candidate cannot serve
	// several primaries exclusively, so every stop goes without a platform.
	stops := []*domain.BusStop{
		stop(1, 50.0000, "Beta", true, domain.StopPosition),
		stop(2, 50.0001, "Beta", true, domain.StopPosition),
		stop(3, 50.0002, "Beta", true, domain.StopPosition),
		stop(4, 50.0001, "Beta", false, domain.Platform),
	}
	w := &captureWarner{}

	got := BuildCollections(stops, testRadius, w)

	if len(got) != 3 {
		t.Fatalf("expected 3 collections, got %d", len(got))
	}
	for i, c := range got {
		if c.Platform != nil {
			t.Errorf("collection %d has platform %v, want none", i, c.Platform.ID)
		}
		if c.Stop == nil {
			t.Errorf("collection %d has no stop", i)
		}
	}
}

func TestAmbiguousExplicitTaggingWarnsAndPrefersPlatform(t *testing.T) {
	stops := []*domain.BusStop{
		stop(1, 50.0000, "Gamma", true, domain.Platform),
		stop(2, 50.0001, "Gamma", true, domain.StopPosition),
	}
	w := &captureWarner{}

	got := BuildCollections(stops, testRadius, w)

	if len(w.messages) != 1 {
		t.Fatalf("expected 1 warning, got %v", w.messages)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 collection, got %d", len(got))
	}
	// Explicit-platform branch wins: the platform is primary and receives
	// the stop as its single candidate.
	if got[0].Platform != stops[0] || got[0].Stop != stops[1] {
		t.Fatalf("expected explicit-platform precedence, got %+v", got[0])
	}
}

func TestUnnamedDiscardedWhenNamedPresent(t *testing.T) {
	stops := []*domain.BusStop{
		stop(1, 50.0000, "Delta", false, domain.Platform),
		stop(2, 50.0001, "Delta", false, domain.StopPosition),
		stop(3, 50.0002, "", false, domain.Platform),
	}
	w := &captureWarner{}

	got := BuildCollections(stops, testRadius, w)

	if len(got) != 1 {
		t.Fatalf("expected 1 collection, got %d", len(got))
	}
	for _, c := range got {
		if c.Platform == stops[2] {
			t.Fatalf("unnamed record survived grouping")
		}
	}
}

func TestOnlyStopsEmitStopOnlyCollections(t *testing.T) {
	stops := []*domain.BusStop{
		stop(2, 50.0001, "", false, domain.StopPosition),
		stop(1, 50.0000, "", false, domain.StopPosition),
	}
	w := &captureWarner{}

	got := BuildCollections(stops, testRadius, w)

	if len(got) != 2 {
		t.Fatalf("expected 2 collections, got %d", len(got))
	}
	// Emitted in ID order regardless of input order.
	if got[0].Stop.ID != 1 || got[1].Stop.ID != 2 {
		t.Fatalf("stops not ordered by ID: %v, %v", got[0].Stop.ID, got[1].Stop.ID)
	}
	for i, c := range got {
		if c.Platform != nil {
			t.Errorf("collection %d unexpectedly has a platform", i)
		}
	}
}

func TestBuildCollectionsDeterministic(t *testing.T) {
	stops := []*domain.BusStop{
		stop(5, 50.0000, "Alpha", true, domain.Platform),
		stop(3, 50.0001, "Alpha", false, domain.StopPosition),
		stop(8, 50.0002, "Alpha", false, domain.StopPosition),
		stop(1, 50.0004, "Beta", false, domain.Platform),
		stop(9, 50.0005, "Beta", false, domain.StopPosition),
	}

	first := BuildCollections(stops, testRadius, &captureWarner{})
	for run := 0; run < 20; run++ {
		again := BuildCollections(stops, testRadius, &captureWarner{})
		if len(again) != len(first) {
			t.Fatalf("run %d: length %d != %d", run, len(again), len(first))
		}
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("run %d: collection %d differs", run, i)
			}
		}
	}
}
