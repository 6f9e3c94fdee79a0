package cache

import (
	"bus-collection-service/internal/adapters/repositories"
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func newSqliteCache(t *testing.T) *SqliteElementCache {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := repositories.InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return NewSqliteElementCache(db)
}

func TestSqliteElementCacheRoundTrip(t *testing.T) {
	c := newSqliteCache(t)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "query"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	payload := []byte(`{"elements":[]}`)
	if err := c.Put(ctx, "query", payload); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "query")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload = %q, want %q", got, payload)
	}
}

func TestSqliteElementCacheReplaces(t *testing.T) {
	c := newSqliteCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "query", []byte("old")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := c.Put(ctx, "query", []byte("new")); err != nil {
		t.Fatalf("put replace: %v", err)
	}

	got, ok, err := c.Get(ctx, "query")
	if err != nil || !ok || string(got) != "new" {
		t.Fatalf("got %q ok=%v err=%v, want \"new\"", got, ok, err)
	}
}

func TestSqliteElementCacheRejectsEmptyKey(t *testing.T) {
	c := newSqliteCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "  ", []byte("x")); err == nil {
		t.Fatal("expected error for blank key")
	}
	if _, _, err := c.Get(ctx, ""); err == nil {
		t.Fatal("expected error for empty key")
	}
}
