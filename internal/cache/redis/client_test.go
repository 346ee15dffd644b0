package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/oggyb/sms-gateway-connector/internal/cache"
)

func TestClient_IncrAndGet(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	c := New(rdb)
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	key := cache.Outcomes.Key(cache.CounterSent)
	for i := 1; i <= 3; i++ {
		n, err := c.Incr(ctx, key)
		if err != nil {
			t.Fatalf("incr: %v", err)
		}
		if n != int64(i) {
			t.Fatalf("incr #%d returned %d", i, n)
		}
	}

	v, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "3" {
		t.Fatalf("got %q, want %q", v, "3")
	}
}

func TestClient_GetMissing(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	_, err := New(rdb).Get(context.Background(), "outcomes:nothing")
	if !errors.Is(err, cache.ErrNotFound) {
		t.Fatalf("got %v, want cache.ErrNotFound", err)
	}
}
