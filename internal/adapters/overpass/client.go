package overpass

import (
	"bus-collection-service/internal/domain"
	"bus-collection-service/internal/platform/obs"
	"bus-collection-service/internal/ports"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/orb"
)

// OverpassStopSource implements StopSource against the Overpass API.
//
// It coordinates:
//   - Bounding-box query construction
//   - Persistent response caching
//   - External API calls with retry/backoff
//
// The source is safe for concurrent use.
type OverpassStopSource struct {
	session *http.Client
	baseURL string
	cache   ports.ElementCache
}

func NewOverpassStopSource(cache ports.ElementCache) *OverpassStopSource {
	return &OverpassStopSource{
		session: &http.Client{Timeout: 30 * time.Second},
		baseURL: "https://overpass-api.de/api/interpreter",
		cache:   cache,
	}
}

// element is one raw Overpass node.
type element struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []element `json:"elements"`
}

// buildQuery renders the Overpass QL statement selecting every bus stop
// element inside the box: explicitly tagged stops plus platform and
// stop-position nodes serving buses.
func buildQuery(box domain.BoundingBox) string {
	bbox := fmt.Sprintf("%g,%g,%g,%g", box.MinLat, box.MinLon, box.MaxLat, box.MaxLon)
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node["highway"="bus_stop"](%[1]s);
  node["public_transport"="platform"]["bus"="yes"](%[1]s);
  node["public_transport"="stop_position"]["bus"="yes"](%[1]s);
);
out body;`, bbox)
}

// Retrieve all bus stop elements inside the bounding box.
func (o *OverpassStopSource) FetchStops(ctx context.Context, box domain.BoundingBox) (_ []*domain.BusStop, err error) {
	defer obs.Time(ctx, "overpass.FetchStops")(&err)

	if !box.Valid() {
		return nil, fmt.Errorf("fetch stops: invalid bounding box %+v", box)
	}

	query := buildQuery(box)

	var payload []byte
	// Check the persistent response cache before issuing external API calls.
	if o.cache != nil {
		cached, ok, err := o.cache.Get(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("fetch stops: read cache: %w", err)
		}
		if ok {
			payload = cached
		}
	}

	if payload == nil {
		payload, err = o.fetch(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("fetch stops: %w", err)
		}

		if o.cache != nil {
			if err := o.cache.Put(ctx, query, payload); err != nil {
				log.Printf("overpass cache write failed: %v", err)
			}
		}
	}

	var decoded overpassResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("fetch stops: decode response: %w", err)
	}

	return mapElements(decoded.Elements), nil
}

func (o *OverpassStopSource) fetch(ctx context.Context, query string) ([]byte, error) {
	form := url.Values{"data": {query}}.Encode()

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, strings.NewReader(form))
	})
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read overpass response: %w", err)
	}
	return payload, nil
}

// mapElements converts raw nodes to domain records, dropping duplicates and
// elements without coordinates.
func mapElements(elements []element) []*domain.BusStop {
	seen := make(map[int64]struct{}, len(elements))
	out := make([]*domain.BusStop, 0, len(elements))

	for _, e := range elements {
		if e.Type != "node" {
			continue
		}
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}

		transport := domain.Platform
		if e.Tags["public_transport"] == "stop_position" {
			transport = domain.StopPosition
		}

		out = append(out, &domain.BusStop{
			ID:        e.ID,
			Position:  orb.Point{e.Lon, e.Lat},
			Name:      e.Tags["name"],
			Explicit:  e.Tags["highway"] == "bus_stop",
			Transport: transport,
		})
	}
	return out
}
