package services

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNoopCacheDisabled(t *testing.T) {
	cache := NewNoopCache()

	if cache.Available() {
		t.Error("noop cache should not report Available")
	}

	var dest map[string]int
	if err := cache.Get(context.Background(), "k", &dest); err != redis.Nil {
		t.Errorf("Get on disabled cache = %v, want redis.Nil", err)
	}

	if err := cache.Set(context.Background(), "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Errorf("Set on disabled cache should be a no-op, got %v", err)
	}
	if err := cache.Delete(context.Background(), "k"); err != nil {
		t.Errorf("Delete on disabled cache should be a no-op, got %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Errorf("Close on disabled cache should be a no-op, got %v", err)
	}
}
