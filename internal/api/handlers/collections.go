package handlers

import (
	"bus-collection-service/internal/api/dto"
	"bus-collection-service/internal/domain"
	"bus-collection-service/internal/platform/obs"
	"bus-collection-service/internal/ports"
	"bus-collection-service/internal/services"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
)

// CollectionHandler resolves survey records into bus stop collections.
type CollectionHandler struct {
	Repo          ports.StopRepository
	Source        ports.StopSource
	Warner        ports.Warner
	DefaultRadius float64 // meters
}

// Resolve loads records (from the map provider for a bbox request, from the
// repository for a region request), runs the resolver, and returns the
// collections.
func (h *CollectionHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CollectionsRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	region := strings.TrimSpace(req.Region)
	if region == "" && req.BBox == nil {
		writeError(w, r, http.StatusBadRequest, "region or bbox is required")
		return
	}
	if region != "" && req.BBox != nil {
		writeError(w, r, http.StatusBadRequest, "region and bbox are mutually exclusive")
		return
	}

	radius := req.SearchRadiusM
	if radius == 0 {
		radius = h.DefaultRadius
	}
	if radius < 1 || radius > 1000 {
		writeError(w, r, http.StatusBadRequest, "search_radius_m must be between 1 and 1000")
		return
	}

	var (
		stops []*domain.BusStop
		err   error
	)
	if req.BBox != nil {
		box := domain.BoundingBox{
			MinLat: req.BBox.MinLat,
			MinLon: req.BBox.MinLon,
			MaxLat: req.BBox.MaxLat,
			MaxLon: req.BBox.MaxLon,
		}
		if !box.Valid() {
			writeError(w, r, http.StatusBadRequest, "bbox is degenerate or out of range")
			return
		}
		stops, err = h.Source.FetchStops(r.Context(), box)
	} else {
		stops, err = h.Repo.ListStops(r.Context(), region)
	}
	if err != nil {
		log.Printf("load stops failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	collections := services.BuildCollections(stops, radius, h.Warner)

	res := dto.ListCollectionsResponse{
		Collections: make([]dto.CollectionResponse, 0, len(collections)),
	}
	for _, c := range collections {
		var cr dto.CollectionResponse
		if c.Platform != nil {
			p := toStopResponse(c.Platform)
			cr.Platform = &p
		}
		if c.Stop != nil {
			s := toStopResponse(c.Stop)
			cr.Stop = &s
		}
		res.Collections = append(res.Collections, cr)
	}

	writeJSON(w, r, http.StatusOK, res)
}
