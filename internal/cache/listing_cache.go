// internal/cache/listing_cache.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/freshcart/freshcart-backend/internal/models"
)

const (
	listingKeyPrefix  = "freshcart:products:v"
	listingVersionKey = "freshcart:products:version"
)

// ListingCache caches public product listings. Invalidate drops every
// cached listing at once.
//
// Get reports the cache version it looked under and Set writes under that
// version only, so rows read before an Invalidate land under a version no
// reader will ask for again.
type ListingCache interface {
	Get(ctx context.Context, query models.ProductQuery) (products []models.Product, version int64, ok bool)
	Set(ctx context.Context, version int64, query models.ProductQuery, products []models.Product)
	Invalidate(ctx context.Context) error
}

type RedisListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisListingCache(client *redis.Client, ttl time.Duration) *RedisListingCache {
	return &RedisListingCache{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (c *RedisListingCache) Get(ctx context.Context, query models.ProductQuery) ([]models.Product, int64, bool) {
	version, err := c.version(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Listing cache unavailable")
		return nil, 0, false
	}

	raw, err := c.client.Get(ctx, ListingKey(version, query)).Bytes()
	if err != nil {
		return nil, version, false
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		logrus.WithError(err).Warn("Failed to unmarshal cached product listing")
		return nil, version, false
	}
	return products, version, true
}

// Set stores products under the version a preceding Get returned. A zero
// version means Get could not reach redis and nothing is written.
func (c *RedisListingCache) Set(ctx context.Context, version int64, query models.ProductQuery, products []models.Product) {
	if version <= 0 {
		return
	}

	payload, err := json.Marshal(products)
	if err != nil {
		logrus.WithError(err).Warn("Failed to marshal product listing for cache")
		return
	}

	if err := c.client.Set(ctx, ListingKey(version, query), payload, c.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to cache product listing")
	}
}

// Invalidate bumps the version so every existing key becomes unreachable;
// stale entries expire on their own TTL.
func (c *RedisListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, listingVersionKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate listing cache: %w", err)
	}
	return nil
}

func (c *RedisListingCache) version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, listingVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		// SetNX so a concurrent Invalidate is not overwritten.
		if err := c.client.SetNX(ctx, listingVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, listingVersionKey).Int64()
	}
	return version, err
}

// ListingKey is stable for equal queries and distinct across versions.
func ListingKey(version int64, query models.ProductQuery) string {
	return fmt.Sprintf("%s%d:sort:%s:from:%s:to:%s:status:%s",
		listingKeyPrefix, version, query.Sort, query.StartDate, query.EndDate, query.Status)
}

// NoopListingCache is used when REDIS_URL is not configured.
type NoopListingCache struct{}

func (NoopListingCache) Get(context.Context, models.ProductQuery) ([]models.Product, int64, bool) {
	return nil, 0, false
}

func (NoopListingCache) Set(context.Context, int64, models.ProductQuery, []models.Product) {}

func (NoopListingCache) Invalidate(context.Context) error { return nil }
