package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"collision-dashboard-api/config"
)

// CacheService fronts Redis for aggregate and query responses. The dataset
// is immutable, so cached entries can only ever go stale against a restart;
// TTLs exist to bound memory, not to track data changes. A nil client means
// caching is disabled and every call degrades to a no-op.
type CacheService struct {
	client *redis.Client
}

func NewCacheService(cfg config.RedisConfig) (*CacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	var lastErr error
	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			return &CacheService{client: client}, nil
		}
		log.Printf("Redis ping attempt %d/5 failed: %v", i+1, lastErr)
		time.Sleep(time.Second)
	}

	return &CacheService{client: nil}, fmt.Errorf("redis ping failed after 5 attempts: %w", lastErr)
}

// NewNoopCache returns a cache that never stores anything. Used when Redis
// is unreachable and by handler tests.
func NewNoopCache() *CacheService {
	return &CacheService{client: nil}
}

func (s *CacheService) Available() bool {
	return s.client != nil
}

// Get unmarshals the cached value for key into dest. A miss (or a disabled
// cache) returns redis.Nil so callers can distinguish it from real errors.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if s.client == nil {
		return redis.Nil
	}
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, key).Err()
}

func (s *CacheService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
