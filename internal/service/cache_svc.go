package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Parkkangwon/trendwatch/internal/metrics"
	"github.com/Parkkangwon/trendwatch/internal/model"
)

// Cache TTLs. Trending churns quickly; the taxonomy is near-static.
const (
	TrendingCacheTTL   = 5 * time.Minute
	CategoriesCacheTTL = 1 * time.Hour
)

// CacheService is an optional Redis cache-aside layer for provider fetches.
// With no Redis configured every operation is a no-op and each interaction
// recomputes the full fetch, which is the default behavior.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
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

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetTrending retrieves a cached trending batch for the region. Returns nil
// if not cached or the cache is disabled.
func (c *CacheService) GetTrending(ctx context.Context, region string) []model.Video {
	if c.rdb == nil {
		return nil
	}
	data, err := c.rdb.Get(ctx, trendingKey(region)).Bytes()
	if err != nil {
		metrics.CacheMisses.Inc()
		return nil
	}
	var videos []model.Video
	if err := json.Unmarshal(data, &videos); err != nil {
		metrics.CacheMisses.Inc()
		return nil
	}
	metrics.CacheHits.Inc()
	return videos
}

// SetTrending stores a trending batch. Empty batches are not cached so a
// provider outage never sticks for a full TTL.
func (c *CacheService) SetTrending(ctx context.Context, region string, videos []model.Video) error {
	if c.rdb == nil || len(videos) == 0 {
		return nil
	}
	b, err := json.Marshal(videos)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, trendingKey(region), b, TrendingCacheTTL).Err()
}

// GetCategories retrieves the cached category map for the region, or nil.
func (c *CacheService) GetCategories(ctx context.Context, region string) model.CategoryMap {
	if c.rdb == nil {
		return nil
	}
	data, err := c.rdb.Get(ctx, categoriesKey(region)).Bytes()
	if err != nil {
		metrics.CacheMisses.Inc()
		return nil
	}
	var categories model.CategoryMap
	if err := json.Unmarshal(data, &categories); err != nil {
		metrics.CacheMisses.Inc()
		return nil
	}
	metrics.CacheHits.Inc()
	return categories
}

// SetCategories stores the category map.
func (c *CacheService) SetCategories(ctx context.Context, region string, categories model.CategoryMap) error {
	if c.rdb == nil || len(categories) == 0 {
		return nil
	}
	b, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, categoriesKey(region), b, CategoriesCacheTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func trendingKey(region string) string {
	return fmt.Sprintf("trending:%s", region)
}

func categoriesKey(region string) string {
	return fmt.Sprintf("categories:%s", region)
}
