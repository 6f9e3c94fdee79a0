package main

import (
	"bus-collection-service/internal/adapters/cache"
	"bus-collection-service/internal/adapters/overpass"
	"bus-collection-service/internal/adapters/repositories"
	"bus-collection-service/internal/domain"
	"bus-collection-service/internal/platform/db"
	"bus-collection-service/internal/platform/obs"
	"bus-collection-service/internal/services"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// collectiontool fetches a region's bus stop records from Overpass, stores
// them in the local SQLite database, resolves collections, and optionally
// persists the result to Postgres.
//
// Required: REGION and BBOX ("minLat,minLon,maxLat,maxLon").
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	region := strings.TrimSpace(os.Getenv("REGION"))
	if region == "" {
		log.Fatal("REGION is required")
	}

	box, err := parseBBox(os.Getenv("BBOX"))
	if err != nil {
		log.Fatal(err)
	}

	radius, err := strconv.ParseFloat(getEnv("SEARCH_RADIUS_M", "50"), 64)
	if err != nil || radius <= 0 {
		log.Fatalf("SEARCH_RADIUS_M must be a positive number, got %q", os.Getenv("SEARCH_RADIUS_M"))
	}

	dbPath := getEnv("DB_PATH", "data/app.db")
	local, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatalf("open sqlite database %q: %v", dbPath, err)
	}
	defer local.Close()

	if err := repositories.InitSchema(local); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	log.Printf("Fetching stops region=%s bbox=%+v", region, box)
	source := overpass.NewOverpassStopSource(cache.NewSqliteElementCache(local))
	stops, err := source.FetchStops(ctx, box)
	if err != nil {
		log.Fatalf("fetch stops: %v", err)
	}
	log.Printf("Fetched %d records", len(stops))

	repo := repositories.NewSqliteStopRepository(local)
	if err := repo.ReplaceStops(ctx, region, stops); err != nil {
		log.Fatalf("store stops: %v", err)
	}

	collections := services.BuildCollections(stops, radius, obs.LogWarner{})
	log.Printf("Resolved %d collections", len(collections))

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		log.Println("DATABASE_URL not set; skipping postgres export")
		return
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	store := repositories.NewPGCollectionStore(pg)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal(err)
	}
	if err := store.ReplaceCollections(ctx, region, collections); err != nil {
		log.Fatalf("export collections: %v", err)
	}
	log.Printf("Exported %d collections region=%s", len(collections), region)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseBBox reads "minLat,minLon,maxLat,maxLon" in degrees.
func parseBBox(s string) (domain.BoundingBox, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 4 {
		return domain.BoundingBox{}, fmt.Errorf("BBOX must be \"minLat,minLon,maxLat,maxLon\", got %q", s)
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return domain.BoundingBox{}, fmt.Errorf("BBOX component %d: %w", i+1, err)
		}
		vals[i] = v
	}

	box := domain.BoundingBox{MinLat: vals[0], MinLon: vals[1], MaxLat: vals[2], MaxLon: vals[3]}
	if !box.Valid() {
		return domain.BoundingBox{}, fmt.Errorf("BBOX is degenerate or out of range: %q", s)
	}
	return box, nil
}
