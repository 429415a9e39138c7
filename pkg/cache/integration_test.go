//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Run with: KTILE_REDIS_ADDR=localhost:6379 KTILE_MONGO_URI=mongodb://localhost:27017 go test -tags integration ./pkg/cache

func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := NewDefaultKeyer().TileSetKey(TileSetKeyOpts{K: 1, W: 1, H: 3, Solver: "integration"})
	defer c.Delete(ctx, key)

	if err := c.Set(ctx, key, []byte("set()\n"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "set()\n" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry survived Delete")
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("KTILE_REDIS_ADDR")
	if addr == "" {
		t.Skip("KTILE_REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), addr, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseCache(t, c)
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("KTILE_MONGO_URI")
	if uri == "" {
		t.Skip("KTILE_MONGO_URI not set")
	}
	c, err := NewMongoCache(context.Background(), uri, "ktile_test", DefaultMongoCollection)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseCache(t, c)
}
