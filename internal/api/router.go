package api

import (
	"bus-collection-service/internal/api/handlers"
	"bus-collection-service/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.StopRepository,
	source ports.StopSource,
	warner ports.Warner,
	defaultRadius float64,
) http.Handler {
	mux := http.NewServeMux()

	stopHandler := &handlers.StopHandler{Repo: repo}
	collectionHandler := &handlers.CollectionHandler{
		Repo:          repo,
		Source:        source,
		Warner:        warner,
		DefaultRadius: defaultRadius,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stops", stopHandler.List)
	mux.HandleFunc("/collections", collectionHandler.Resolve)

	return loggingMiddleware(mux)
}
