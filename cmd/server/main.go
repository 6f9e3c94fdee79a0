package main

import (
	"bus-collection-service/internal/adapters/cache"
	"bus-collection-service/internal/adapters/overpass"
	"bus-collection-service/internal/adapters/repositories"
	"bus-collection-service/internal/api"
	"bus-collection-service/internal/platform/obs"
	"bus-collection-service/internal/ports"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, Overpass) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := getEnv("DB_PATH", "data/app.db")
	port := getEnv("PORT", "8080")
	redisAddr := os.Getenv("REDIS_ADDR")

	radius, err := strconv.ParseFloat(getEnv("SEARCH_RADIUS_M", "50"), 64)
	if err != nil || radius <= 0 {
		log.Fatalf("SEARCH_RADIUS_M must be a positive number, got %q", os.Getenv("SEARCH_RADIUS_M"))
	}

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := repositories.InitSchema(db); err != nil {
		log.Fatal(err)
	}

	// Overpass responses are cached in Redis when available, otherwise in
	// the local SQLite database.
	var elementCache ports.ElementCache
	if redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		elementCache = cache.NewRedisElementCache(client, 24*time.Hour)
		log.Printf("Using redis element cache addr=%s", redisAddr)
	} else {
		elementCache = cache.NewSqliteElementCache(db)
	}

	source := overpass.NewOverpassStopSource(elementCache)
	repo := repositories.NewSqliteStopRepository(db)
	router := api.NewRouter(repo, source, obs.LogWarner{}, radius)

	// Timeouts are tuned for cold-cache Overpass fetches (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}
