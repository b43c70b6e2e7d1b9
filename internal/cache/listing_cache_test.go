// internal/cache/listing_cache_test.go
package cache

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshcart/freshcart-backend/internal/models"
)

func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:       "localhost:0",
		MaxRetries: -1,
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return nil, errors.New("redis disabled in tests")
		},
	})
}

func newMiniredisCache(t *testing.T) (*RedisListingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisListingCache(client, time.Minute), mr
}

func TestListingKey(t *testing.T) {
	q := models.ProductQuery{Sort: models.SortLowToHigh, StartDate: "2024-01-01", EndDate: "2024-02-01"}

	assert.Equal(t, ListingKey(3, q), ListingKey(3, q))
	assert.NotEqual(t, ListingKey(3, q), ListingKey(4, q))
	assert.NotEqual(t, ListingKey(3, q), ListingKey(3, models.ProductQuery{Sort: models.SortHighToLow}))
	assert.Contains(t, ListingKey(1, models.ProductQuery{Status: models.ProductStatusApproved}), "status:approved")
}

func TestRedisListingCacheHit(t *testing.T) {
	c, mr := newMiniredisCache(t)
	ctx := context.Background()
	q := models.ProductQuery{Sort: models.SortLowToHigh}

	_, version, ok := c.Get(ctx, q)
	require.False(t, ok)
	assert.Equal(t, int64(1), version)

	c.Set(ctx, version, q, []models.Product{{Name: "Tomatoes", Price: 2.5}})

	products, _, ok := c.Get(ctx, q)
	require.True(t, ok)
	require.Len(t, products, 1)
	assert.Equal(t, "Tomatoes", products[0].Name)
	assert.Equal(t, time.Minute, mr.TTL(ListingKey(version, q)))

	_, _, ok = c.Get(ctx, models.ProductQuery{Sort: models.SortHighToLow})
	assert.False(t, ok)
}

func TestRedisListingCacheInvalidate(t *testing.T) {
	c, _ := newMiniredisCache(t)
	ctx := context.Background()
	q := models.ProductQuery{}

	_, version, _ := c.Get(ctx, q)
	c.Set(ctx, version, q, []models.Product{{Name: "Tomatoes"}})

	require.NoError(t, c.Invalidate(ctx))

	_, next, ok := c.Get(ctx, q)
	assert.False(t, ok)
	assert.Greater(t, next, version)
}

func TestRedisListingCacheDropsRowsReadBeforeInvalidate(t *testing.T) {
	c, _ := newMiniredisCache(t)
	ctx := context.Background()
	q := models.ProductQuery{}

	// A reader misses, then a write lands before the reader stores its rows.
	_, version, ok := c.Get(ctx, q)
	require.False(t, ok)
	require.NoError(t, c.Invalidate(ctx))
	c.Set(ctx, version, q, []models.Product{{Name: "Tomatoes", Price: "old"}})

	products, _, ok := c.Get(ctx, q)
	assert.False(t, ok, "rows read before the write must not be served: %v", products)
}

func TestRedisListingCacheDegradesToMiss(t *testing.T) {
	client := unreachableRedis()
	defer client.Close()

	c := NewRedisListingCache(client, time.Minute)
	ctx := context.Background()

	products, version, ok := c.Get(ctx, models.ProductQuery{})
	assert.False(t, ok)
	assert.Nil(t, products)
	assert.Zero(t, version)

	c.Set(ctx, version, models.ProductQuery{}, []models.Product{{Name: "Tomatoes"}})
	assert.Error(t, c.Invalidate(ctx))
}

func TestNoopListingCache(t *testing.T) {
	var c ListingCache = NoopListingCache{}
	ctx := context.Background()

	c.Set(ctx, 1, models.ProductQuery{}, []models.Product{{Name: "Tomatoes"}})
	_, _, ok := c.Get(ctx, models.ProductQuery{})
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(ctx))
}
