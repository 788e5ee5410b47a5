package cache

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"
)

// TestRedisCache runs against a real Redis when CLINIGRID_REDIS_URL is
// set, e.g. redis://localhost:6379/0.
func TestRedisCache(t *testing.T) {
	url := os.Getenv("CLINIGRID_REDIS_URL")
	if url == "" {
		t.Skip("CLINIGRID_REDIS_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	defer c.Close()

	key := "clinigrid_test:roundtrip"
	defer c.Delete(ctx, key)

	if _, found, err := c.Get(ctx, key); err != nil || found {
		t.Fatalf("Get() before Set = found %v, err %v", found, err)
	}

	want := []byte(`{"rows":["Cough"]}`)
	if err := c.Set(ctx, key, want, time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, found, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !found {
		t.Fatal("Get() after Set should find the entry")
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, found, _ := c.Get(ctx, key); found {
		t.Error("Get() after Delete should miss")
	}
}

// TestRedisCacheTTL verifies entries expire. Guarded like TestRedisCache.
func TestRedisCacheTTL(t *testing.T) {
	url := os.Getenv("CLINIGRID_REDIS_URL")
	if url == "" {
		t.Skip("CLINIGRID_REDIS_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	defer c.Close()

	key := "clinigrid_test:ttl"
	defer c.Delete(ctx, key)

	if err := c.Set(ctx, key, []byte("x"), 50*time.Millisecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(150 * time.Millisecond)

	if _, found, _ := c.Get(ctx, key); found {
		t.Error("entry should have expired")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url"); err == nil {
		t.Error("NewRedisCache() should reject a malformed URL")
	}
}
