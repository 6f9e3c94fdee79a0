package handlers

import (
	"bus-collection-service/internal/api/dto"
	"bus-collection-service/internal/domain"
	"bus-collection-service/internal/platform/obs"
	"bus-collection-service/internal/ports"
	"log"
	"net/http"
	"strings"
)

// StopHandler exposes read-only access to stored survey records.
type StopHandler struct {
	Repo ports.StopRepository
}

func (h *StopHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	region := strings.TrimSpace(r.URL.Query().Get("region"))
	if region == "" {
		writeError(w, r, http.StatusBadRequest, "region is required")
		return
	}

	stops, err := h.Repo.ListStops(r.Context(), region)
	if err != nil {
		log.Printf("list stops failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStopsResponse{
		Stops: make([]dto.BusStopResponse, 0, len(stops)),
	}
	for _, s := range stops {
		res.Stops = append(res.Stops, toStopResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toStopResponse(s *domain.BusStop) dto.BusStopResponse {
	return dto.BusStopResponse{
		ID:        s.ID,
		Lon:       s.Position[0],
		Lat:       s.Position[1],
		Name:      s.Name,
		Explicit:  s.Explicit,
		Transport: s.Transport.String(),
	}
}
