package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joebaillie21/daycipe.io/internal/model"
)

// TodayCacheTTL bounds staleness of the today-content cache; vote
// mutations invalidate eagerly, the TTL is a backstop.
const TodayCacheTTL = 5 * time.Minute

// CacheService provides a Redis cache-aside layer for today-content
// lookups. All operations are no-ops when Redis is unconfigured.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a CacheService. If redisURL is empty or the
// connection fails, caching is disabled rather than fatal.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (health checks, vote
// state). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetToday retrieves a cached today-content response. Returns nil when
// not cached or caching is disabled.
func (c *CacheService) GetToday(ctx context.Context, kind model.Kind, date time.Time, category string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, todayKey(kind, date, category)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetToday stores a today-content response.
func (c *CacheService) SetToday(ctx context.Context, kind model.Kind, date time.Time, category string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, todayKey(kind, date, category), b, TodayCacheTTL).Err()
}

// InvalidateKind drops every cached entry for a kind. Called after any
// vote mutation, since a score change can flip visibility for any slot
// of that kind.
func (c *CacheService) InvalidateKind(ctx context.Context, kind model.Kind) error {
	if c.rdb == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, fmt.Sprintf("today:%s:*", kind), 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func todayKey(kind model.Kind, date time.Time, category string) string {
	if category == "" {
		return fmt.Sprintf("today:%s:%s", kind, date.Format("2006-01-02"))
	}
	return fmt.Sprintf("today:%s:%s:%s", kind, date.Format("2006-01-02"), category)
}
